package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

var ErrNotAdmin = errors.New("admin access required")

type AdminService struct {
	storage *storage.Storage
}

func NewAdminService(store *storage.Storage) *AdminService {
	return &AdminService{storage: store}
}

// ListUsers returns every user when requesterID is an admin.
func (s *AdminService) ListUsers(ctx context.Context, requesterID uuid.UUID) ([]User, error) {
	requester, err := s.storage.Users.FindByID(ctx, requesterID)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil, ErrNotAdmin
	}
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin {
		return nil, ErrNotAdmin
	}

	rows, err := s.storage.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]User, len(rows))
	for i, row := range rows {
		users[i] = userFromStorage(row)
	}
	return users, nil
}
