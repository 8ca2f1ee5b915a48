package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Registration is what a successful sign-up created.
type Registration struct {
	User          User
	AccountNumber string
}

// AuthService handles registration and password login.
type AuthService struct {
	storage         *storage.Storage
	operator        actionProcessor
	logger          *logrus.Logger
	isAdminEmail    func(string) bool
	startingBalance decimal.Decimal
}

func NewAuthService(store *storage.Storage, op actionProcessor, opts Options) *AuthService {
	opts = opts.withDefaults()
	return &AuthService{
		storage:         store,
		operator:        op,
		logger:          opts.Logger,
		isAdminEmail:    opts.IsAdminEmail,
		startingBalance: opts.StartingBalance,
	}
}

// Register creates the user and its first account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Registration, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	action := &actions.Register{
		Name:            strings.TrimSpace(name),
		Email:           email,
		PasswordHash:    string(hash),
		IsAdmin:         s.isAdminEmail(email),
		StartingBalance: s.startingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"userID":  action.UserID.String(),
		"isAdmin": action.IsAdmin,
	}).Info("AuthService.Register.created")

	return &Registration{
		User: User{
			ID:      action.UserID,
			Name:    action.Name,
			Email:   email,
			IsAdmin: action.IsAdmin,
		},
		AccountNumber: action.AccountNumber,
	}, nil
}

// Login checks email and password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*User, error) {
	row, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := userFromStorage(row)
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
