package predictor

import (
	"encoding/json"

	"github.com/vantagefin/vantage/internal/models"
)

const FallbackMessage = "Fallback to mock predictions."

// FallbackPredictions is the fixed payload served when the delegate fails.
func FallbackPredictions() []models.FallbackPrediction {
	return []models.FallbackPrediction{
		{Ticker: "AAPL", CurrentPrice: 178.50, PredictedPrice: 185.20, Confidence: 0.87},
		{Ticker: "GOOGL", CurrentPrice: 142.30, PredictedPrice: 138.90, Confidence: 0.72},
		{Ticker: "MSFT", CurrentPrice: 378.90, PredictedPrice: 385.40, Confidence: 0.81},
	}
}

func FallbackResponse() models.PredictionsResponse {
	payload, _ := json.Marshal(FallbackPredictions())
	return models.PredictionsResponse{
		Success:     true,
		Fallback:    true,
		Message:     FallbackMessage,
		Predictions: payload,
	}
}
