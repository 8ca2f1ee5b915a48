package fraud

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

func TestThresholdRule(t *testing.T) {
	rule := NewThresholdRule(DefaultThreshold)
	source := &sqlconfig.Account{Number: "AC0000000001"}

	tests := []struct {
		name    string
		amount  string
		blocked bool
	}{
		{"well below", "250.00", false},
		{"exactly at threshold", "100000", false},
		{"just above", "100000.01", true},
		{"far above", "5000000", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := rule.Check(decimal.RequireFromString(tc.amount), source)
			assert.Equal(t, tc.blocked, verdict.Blocked)
			if tc.blocked {
				assert.Contains(t, verdict.Reason, "exceeds threshold 100000")
			} else {
				assert.Empty(t, verdict.Reason)
			}
		})
	}
}

func TestCheckerFunc(t *testing.T) {
	var seen *sqlconfig.Account
	checker := CheckerFunc(func(amount decimal.Decimal, source *sqlconfig.Account) Verdict {
		seen = source
		return Verdict{Blocked: amount.IsNegative(), Reason: "negative"}
	})

	source := &sqlconfig.Account{Number: "AC0000000002"}
	assert.True(t, checker.Check(decimal.NewFromInt(-1), source).Blocked)
	assert.Same(t, source, seen)
	assert.False(t, Allow.Check(decimal.NewFromInt(1_000_000_000), source).Blocked)
}
