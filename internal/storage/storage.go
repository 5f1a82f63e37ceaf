package storage

import (
	"context"

	"github.com/vantagefin/vantage/internal/models"
)

// UserStore lookups return (nil, nil) when no row matches; callers decide
// whether that is an error.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID, name, email, passwordHash string) (*models.User, error)
}

type PortfolioStore interface {
	CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) error
	// GetFirstByUserID returns the earliest portfolio for the user, or (nil, nil).
	GetFirstByUserID(ctx context.Context, userID string) (*models.Portfolio, error)
}
