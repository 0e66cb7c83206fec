package types

// TurnoverStatistics is returned by /statistics/turnover-statistics.
type TurnoverStatistics struct {
	Profit          float64        `json:"profit"`
	ProfitEvolution []WeeklyProfit `json:"profitEvolution"`
}

// WeeklyProfit is one point of the profit curve.
type WeeklyProfit struct {
	Week   string  `json:"week"`
	Profit float64 `json:"profit"`
}

// FinancialStatement is returned by /statistics/financial-statement.
type FinancialStatement struct {
	MoneyOwed                    float64 `json:"moneyOwed"`
	NumberOfPhysicalGamesForSale int     `json:"numberOfPhysicalGamesForSale"`
	ValueOfPhysicalGamesForSale  float64 `json:"valueOfPhysicalGamesForSale"`
	TurnoverPossible             float64 `json:"turnoverPossible"`
	TurnoverOfThisYear           float64 `json:"turnoverOfThisYear"`
}

// CategorySales counts sales for one category.
type CategorySales struct {
	Category string `json:"category"`
	Sells    int    `json:"sells"`
}

// TopSeller is returned by /statistics/top-seller.
type TopSeller struct {
	Seller Seller `json:"seller"`
	Sales  int    `json:"sales"`
}
