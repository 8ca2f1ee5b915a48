// Package fraud decides whether a transfer may proceed. The default policy is a
// single amount threshold; anything smarter plugs in through Checker.
package fraud

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// DefaultThreshold is the amount above which ThresholdRule blocks.
var DefaultThreshold = decimal.NewFromInt(100000)

// Verdict is the outcome of a check. Reason is set only when Blocked.
type Verdict struct {
	Blocked bool
	Reason  string
}

// Checker inspects a transfer before any balance moves.
type Checker interface {
	Check(amount decimal.Decimal, source *sqlconfig.Account) Verdict
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(amount decimal.Decimal, source *sqlconfig.Account) Verdict

func (f CheckerFunc) Check(amount decimal.Decimal, source *sqlconfig.Account) Verdict {
	return f(amount, source)
}

// ThresholdRule blocks any amount strictly greater than Limit.
type ThresholdRule struct {
	Limit decimal.Decimal
}

func NewThresholdRule(limit decimal.Decimal) ThresholdRule {
	return ThresholdRule{Limit: limit}
}

func (r ThresholdRule) Check(amount decimal.Decimal, _ *sqlconfig.Account) Verdict {
	if amount.GreaterThan(r.Limit) {
		return Verdict{
			Blocked: true,
			Reason:  fmt.Sprintf("amount %s exceeds threshold %s", amount.String(), r.Limit.String()),
		}
	}
	return Verdict{}
}

// Allow never blocks.
var Allow Checker = CheckerFunc(func(decimal.Decimal, *sqlconfig.Account) Verdict { return Verdict{} })
