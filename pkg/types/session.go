package types

// Session is one resale event with its deposit and selling windows.
type Session struct {
	ID               int       `json:"id"`
	CommissionRate   float64   `json:"commissionRate"`
	DepositFeesRate  float64   `json:"depositFeesRate"`
	StartDateDeposit Timestamp `json:"startDateDeposit"`
	EndDateDeposit   Timestamp `json:"endDateDeposit"`
	StartDateSelling Timestamp `json:"startDateSelling"`
	EndDateSelling   Timestamp `json:"endDateSelling"`
}

// SessionForm is the body used to create or update a session.
type SessionForm struct {
	CommissionRate   float64   `json:"commissionRate"`
	DepositFeesRate  float64   `json:"depositFeesRate"`
	StartDateDeposit Timestamp `json:"startDateDeposit"`
	EndDateDeposit   Timestamp `json:"endDateDeposit"`
	StartDateSelling Timestamp `json:"startDateSelling"`
	EndDateSelling   Timestamp `json:"endDateSelling"`
}
