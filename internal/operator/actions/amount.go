package actions

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(18,2).
const amountScale = 2

var maxAmount = decimal.New(1, 16)

// ValidateAmount rejects amounts the money columns cannot hold exactly.
// Postgres would otherwise round extra decimals on write.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return fmt.Errorf("%w: at most %d decimal places allowed", ErrInvalidAmount, amountScale)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: must be below %s", ErrInvalidAmount, maxAmount.String())
	}
	return nil
}
