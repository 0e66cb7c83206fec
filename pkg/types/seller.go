package types

// Seller is a person depositing games for resale.
type Seller struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SellerForm is the body used to create or update a seller.
type SellerForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SellerBalanceSheet summarises what the event owes a seller.
type SellerBalanceSheet struct {
	Credit               float64 `json:"credit"`
	GamesForSale         int     `json:"gamesForSale"`
	PossibleGain         float64 `json:"possibleGain"`
	GamesToWithdraw      int     `json:"gamesToWithdraw"`
	ValueToWithdraw      float64 `json:"valueToWithdraw"`
	TotalFeesForDeposits float64 `json:"totalFeesForDeposits"`
}

// Deposit records one drop-off of games by a seller.
type Deposit struct {
	ID            int       `json:"id"`
	Date          Timestamp `json:"date"`
	FeesApplied   float64   `json:"feesApplied"`
	SessionID     int       `json:"sessionId"`
	TransactionID int       `json:"transactionId"`
	SellerID      int       `json:"sellerId"`
}

// DepositForm is the body of POST /sellers/{id}/deposits.
type DepositForm struct {
	FeesApplied       float64            `json:"feesApplied"`
	CommissionApplied float64            `json:"commissionApplied"`
	MeanPaymentID     int                `json:"meanPaymentId"`
	PhysicalGames     []DepositGameEntry `json:"physicalGames"`
}

// DepositGameEntry is one catalogue game deposited in some quantity at a price.
type DepositGameEntry struct {
	GameID   int     `json:"gameId"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
