package models

import "encoding/json"

// DelegateOutput is the single JSON line the prediction script prints on stdout.
type DelegateOutput struct {
	Success     bool            `json:"success"`
	Predictions json.RawMessage `json:"predictions"`
	Error       string          `json:"error,omitempty"`
}

type PredictionsResponse struct {
	Success     bool            `json:"success"`
	Fallback    bool            `json:"fallback,omitempty"`
	Message     string          `json:"message,omitempty"`
	Predictions json.RawMessage `json:"predictions"`
}

// FallbackPrediction mirrors the fixed payload served when the delegate fails.
type FallbackPrediction struct {
	Ticker         string  `json:"ticker"`
	CurrentPrice   float64 `json:"currentPrice"`
	PredictedPrice float64 `json:"predictedPrice"`
	Confidence     float64 `json:"confidence"`
}

type RunMLResponse struct {
	Success bool     `json:"success"`
	Logs    []string `json:"logs,omitempty"`
	Error   string   `json:"error,omitempty"`
}
