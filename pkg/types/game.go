package types

// Category groups catalogue games.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Publisher is the editor of a catalogue game.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is a catalogue entry. Category and Publisher are only populated by
// endpoints that expand them.
type Game struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name"`
	MinimumPrice         int        `json:"minimumPrice"`
	MinimumPlayersNumber int        `json:"minimumPlayersNumber"`
	MaximumPlayersNumber int        `json:"maximumPlayersNumber"`
	CategoryID           int        `json:"categoryId"`
	PublisherID          int        `json:"publisherId"`
	Category             *Category  `json:"category,omitempty"`
	Publisher            *Publisher `json:"publisher,omitempty"`
}

// GameForm is the body of POST /games.
type GameForm struct {
	Name                 string `json:"name"`
	MinimumPlayersNumber int    `json:"minimumPlayersNumber"`
	MaximumPlayersNumber int    `json:"maximumPlayersNumber"`
	CategoryID           int    `json:"categoryId"`
	PublisherID          int    `json:"publisherId"`
}

// GameFilter narrows GET /games/for-sale. Zero fields are not sent.
type GameFilter struct {
	GameName      string
	PublisherName string
	CategoryName  string
	PlayerNumber  int
	MinimumPrice  int
	MaximumPrice  int
}

// PhysicalGameStatus is the lifecycle state of a deposited copy.
type PhysicalGameStatus string

const (
	PhysicalGameDeposited PhysicalGameStatus = "deposited"
	PhysicalGameForSale   PhysicalGameStatus = "for_sale"
	PhysicalGameSold      PhysicalGameStatus = "sold"
	PhysicalGameForgotten PhysicalGameStatus = "forgotten"
	PhysicalGameRecovered PhysicalGameStatus = "recovered"
)

// Valid reports whether s is a known status.
func (s PhysicalGameStatus) Valid() bool {
	switch s {
	case PhysicalGameDeposited, PhysicalGameForSale, PhysicalGameSold, PhysicalGameForgotten, PhysicalGameRecovered:
		return true
	}
	return false
}

// PhysicalGame is one deposited copy of a catalogue game.
type PhysicalGame struct {
	ID              int            `json:"id"`
	Barcode         NullableString `json:"barcode"`
	Price           float64        `json:"price"`
	IsLabellingDone bool           `json:"isLabellingDone"`
	IsSold          bool           `json:"isSold"`
	Game            *Game          `json:"game,omitempty"`
}

// PhysicalGameStatusUpdate is the body of PUT /physical-games.
type PhysicalGameStatusUpdate struct {
	IDs    []int              `json:"ids"`
	Status PhysicalGameStatus `json:"status"`
}
