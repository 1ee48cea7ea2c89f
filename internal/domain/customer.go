package domain

// Customer is the broker-owned identity of an authenticated user. Only read
// after a successful credential check, never stored locally.
type Customer struct {
	ID             int64
	Name           string
	AccountBalance float64
	Currency       string
}
