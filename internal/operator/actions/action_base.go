package actions

import (
	"context"

	"github.com/carson-networks/bank-server/internal/storage"
)

// IAction is one unit of work. The operator commits when Perform returns nil
// and rolls back otherwise, so an action never commits partial effects.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
