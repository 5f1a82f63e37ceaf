package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vantagefin/vantage/internal/database"
	"github.com/vantagefin/vantage/internal/models"
)

type PostgresPortfolioStore struct {
	db *database.DBManager
}

func NewPostgresPortfolioStore(db *database.DBManager) *PostgresPortfolioStore {
	return &PostgresPortfolioStore{db: db}
}

func (s *PostgresPortfolioStore) CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	query := `
		INSERT INTO portfolios (id, user_id, name, tickers, weights, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Write().Exec(ctx, query,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.Tickers,
		portfolio.Weights,
		portfolio.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}

	return nil
}

func (s *PostgresPortfolioStore) GetFirstByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	query := `
		SELECT id, user_id, name, tickers, weights, created_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var portfolio models.Portfolio
	err := s.db.Read().QueryRow(ctx, query, userID).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.Name,
		&portfolio.Tickers,
		&portfolio.Weights,
		&portfolio.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &portfolio, nil
}
