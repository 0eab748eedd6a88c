package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashItem is a single line of the cash register.
type CashItem struct {
	ID           int64
	Description  string
	PaymentDate  *time.Time
	ServiceValue decimal.NullDecimal
	PaidValue    decimal.NullDecimal
	Presenter    string
}
