package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

type CardService struct {
	storage  *storage.Storage
	operator actionProcessor
}

func NewCardService(store *storage.Storage, op actionProcessor) *CardService {
	return &CardService{storage: store, operator: op}
}

func (s *CardService) List(ctx context.Context, ownerID uuid.UUID) ([]VirtualCard, error) {
	rows, err := s.storage.VirtualCards.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cards := make([]VirtualCard, len(rows))
	for i, row := range rows {
		cards[i] = virtualCardFromStorage(row)
	}
	return cards, nil
}

func (s *CardService) Create(ctx context.Context, ownerID uuid.UUID) (*VirtualCard, error) {
	action := &actions.CreateVirtualCard{OwnerID: ownerID}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	card := virtualCardFromStorage(&action.Card)
	return &card, nil
}
