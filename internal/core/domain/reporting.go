package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a per-category aggregation.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}
