package models

import "time"

// Portfolio is one named ticker basket. A user may accumulate several records;
// reads always resolve to the earliest one.
type Portfolio struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Name      string             `json:"name"`
	Tickers   []string           `json:"tickers"`
	Weights   map[string]float64 `json:"weights"`
	CreatedAt time.Time          `json:"created_at"`
}

type CreatePortfolioRequest struct {
	Name    string             `json:"name"`
	Tickers []string           `json:"tickers"`
	Weights map[string]float64 `json:"weights"`
}
