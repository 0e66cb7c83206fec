package types

// PaymentMean is an accepted way of paying (cash, card, ...).
type PaymentMean struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	PhysicalGameIDs []int `json:"physicalGameIds"`
	MeanPaymentID   int   `json:"meanPaymentId"`
}

// OrderResponse is the transaction created by an order.
type OrderResponse struct {
	ID              int       `json:"id"`
	Amount          float64   `json:"amount"`
	TransactionType string    `json:"transactionType"`
	MeanPaymentID   int       `json:"meanPaymentId"`
	Date            Timestamp `json:"date"`
}

// InvoiceRequest asks the server to mail an invoice for a transaction.
type InvoiceRequest struct {
	BuyerEmail     string `json:"buyerEmail"`
	BuyerAddress   string `json:"buyerAddress"`
	BuyerFirstName string `json:"buyerFirstName"`
	BuyerLastName  string `json:"buyerLastName"`
	TransactionID  int    `json:"transactionId"`
}
