package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/storage"
	"github.com/vantagefin/vantage/internal/validation"
)

type PortfolioService struct {
	portfolios storage.PortfolioStore
}

func NewPortfolioService(portfolios storage.PortfolioStore) *PortfolioService {
	return &PortfolioService{portfolios: portfolios}
}

// Create always inserts a new record; repeated creates for the same user
// accumulate, and only the earliest is ever read back. Weights are stored
// as submitted; the sum-to-1 invariant belongs to the client.
func (s *PortfolioService) Create(ctx context.Context, userID string, req *models.CreatePortfolioRequest) (*models.Portfolio, error) {
	if req.Name == "" {
		return nil, ValidationError("name is required")
	}
	if len(req.Tickers) == 0 {
		return nil, ValidationError("at least one ticker is required")
	}
	for _, ticker := range req.Tickers {
		if err := validation.ValidateTicker(ticker); err != nil {
			return nil, ValidationError(fmt.Sprintf("invalid ticker %q: %v", ticker, err))
		}
	}

	weights := req.Weights
	if weights == nil {
		weights = map[string]float64{}
	}

	portfolio := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Tickers:   req.Tickers,
		Weights:   weights,
		CreatedAt: time.Now(),
	}

	if err := s.portfolios.CreatePortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

func (s *PortfolioService) Get(ctx context.Context, userID string) (*models.Portfolio, error) {
	portfolio, err := s.portfolios.GetFirstByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	if portfolio == nil {
		return nil, ErrPortfolioNotFound
	}

	return portfolio, nil
}

// Tickers returns the caller's portfolio tickers, or defaults when no
// portfolio exists yet.
func (s *PortfolioService) Tickers(ctx context.Context, userID string, defaults []string) ([]string, error) {
	portfolio, err := s.portfolios.GetFirstByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	if portfolio == nil || len(portfolio.Tickers) == 0 {
		return defaults, nil
	}

	return portfolio.Tickers, nil
}
