package actions

import (
	"math/rand/v2"
	"strings"
)

const (
	accountNumberPrefix = "AC"
	accountNumberDigits = 10

	// Virtual cards are not real card-network credentials.
	virtualCardExpiry = "12/29"
	virtualCardCVV    = "123"
)

func randomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// NewAccountNumber returns "AC" followed by ten random digits. Collisions are
// left to the unique index.
func NewAccountNumber() string {
	return accountNumberPrefix + randomDigits(accountNumberDigits)
}

// NewVirtualCardNumber returns four space separated groups of four digits.
func NewVirtualCardNumber() string {
	groups := make([]string, 4)
	for i := range groups {
		groups[i] = randomDigits(4)
	}
	return strings.Join(groups, " ")
}
