package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/vantagefin/vantage/internal/events"
	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/middleware"
	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/predictor"
	"github.com/vantagefin/vantage/internal/service"
)

// resultCache is the slice of the multi-tier cache the handler needs.
type resultCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event *events.PredictionEvent) error
}

// InsightsHandler serves the prediction endpoints backed by the delegate
// pool, plus the fixed-mock analytics endpoints. The cache and publisher are
// optional; without them every request hits the delegate and nothing is
// audited.
type InsightsHandler struct {
	portfolios     *service.PortfolioService
	pool           *predictor.Pool
	cache          resultCache
	producer       eventPublisher
	defaultTickers []string
	log            *logger.Logger
}

func NewInsightsHandler(
	portfolios *service.PortfolioService,
	pool *predictor.Pool,
	predictionCache resultCache,
	producer eventPublisher,
	defaultTickers []string,
) *InsightsHandler {
	return &InsightsHandler{
		portfolios:     portfolios,
		pool:           pool,
		cache:          predictionCache,
		producer:       producer,
		defaultTickers: defaultTickers,
		log:            logger.New("insights-handler"),
	}
}

func (h *InsightsHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	tickers, err := h.portfolios.Tickers(ctx, userID, h.defaultTickers)
	if err != nil {
		h.log.Error("Failed to resolve tickers: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Prediction failed - internal server error.",
		})
		return
	}

	cacheKey := predictionsCacheKey(tickers)
	if h.cache != nil {
		var cached models.PredictionsResponse
		if found, err := h.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			h.log.Debug("Serving cached predictions for %v", tickers)
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	h.log.Info("Fetching live predictions for %v", tickers)
	res := h.pool.Predict(ctx, tickers)

	out, parseErr := resultOutput(res)
	if parseErr != nil {
		h.log.Warn("Delegate failed, serving fallback: %v", parseErr)
		h.publishEvent(ctx, userID, tickers, events.OutcomeFallback, res.Duration)
		respondJSON(w, http.StatusOK, predictor.FallbackResponse())
		return
	}

	resp := models.PredictionsResponse{
		Success:     true,
		Predictions: out.Predictions,
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, cacheKey, resp); err != nil {
			h.log.Warn("Failed to cache predictions: %v", err)
		}
	}

	h.publishEvent(ctx, userID, tickers, events.OutcomeOK, res.Duration)
	respondJSON(w, http.StatusOK, resp)
}

// RunML is the playground endpoint: it relays the delegate's raw stdout
// instead of the parsed payload. Its default basket is a single ticker to
// keep playground runs cheap.
func (h *InsightsHandler) RunML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	tickers, err := h.portfolios.Tickers(ctx, userID, []string{"AAPL"})
	if err != nil {
		h.log.Error("Failed to resolve tickers: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Internal Server Error running ML",
		})
		return
	}

	h.log.Info("Playground run for %v", tickers)
	res := h.pool.Predict(ctx, tickers)

	if res.Err != nil {
		h.log.Warn("Playground delegate failed: %v", res.Err)
		h.publishEvent(ctx, userID, tickers, events.OutcomeError, res.Duration)
		respondJSON(w, http.StatusOK, models.RunMLResponse{
			Success: false,
			Error:   "Python script failed",
		})
		return
	}

	h.publishEvent(ctx, userID, tickers, events.OutcomeOK, res.Duration)
	respondJSON(w, http.StatusOK, models.RunMLResponse{
		Success: true,
		Logs:    res.Logs,
	})
}

func (h *InsightsHandler) ExplainableAI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.ExplainableAIResponse{
		ModelExplanation: models.ModelExplanation{
			Features: []models.ModelFeature{
				{Name: "Price Trend", Importance: 0.35, Value: "positive"},
				{Name: "Volume", Importance: 0.25, Value: "high"},
				{Name: "Market Sentiment", Importance: 0.20, Value: "bullish"},
				{Name: "Technical Indicators", Importance: 0.15, Value: "positive"},
				{Name: "News Sentiment", Importance: 0.05, Value: "neutral"},
			},
			Prediction: "BUY",
			Confidence: 0.82,
		},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *InsightsHandler) NLPAnalysis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NLPAnalysisResponse{
		Sentiment: models.Sentiment{
			Overall:  "positive",
			Score:    0.68,
			Positive: 45,
			Neutral:  30,
			Negative: 25,
		},
		Keywords:    []string{"growth", "revenue", "innovation", "market", "technology"},
		Summary:     "Overall market sentiment is positive with strong indicators for technology sector growth.",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *InsightsHandler) StressTesting(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.StressTestingResponse{
		Scenarios: []models.StressScenario{
			{
				Name:           "Market Crash (-30%)",
				PortfolioLoss:  -25000,
				PercentageLoss: -28.5,
				Probability:    "Low",
			},
			{
				Name:           "Moderate Decline (-15%)",
				PortfolioLoss:  -12500,
				PercentageLoss: -14.2,
				Probability:    "Medium",
			},
			{
				Name:           "Bull Market (+20%)",
				PortfolioGain:  17500,
				PercentageGain: 19.8,
				Probability:    "Medium",
			},
		},
		RiskMetrics: models.RiskMetrics{
			ValueAtRisk: 15000,
			MaxDrawdown: 18.5,
			SharpeRatio: 1.45,
		},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *InsightsHandler) publishEvent(ctx context.Context, userID string, tickers []string, outcome string, duration time.Duration) {
	if h.producer == nil {
		return
	}

	event := &events.PredictionEvent{
		UserID:     userID,
		Tickers:    tickers,
		Outcome:    outcome,
		DurationMs: duration.Milliseconds(),
		Timestamp:  time.Now().Unix(),
	}

	if err := h.producer.Publish(ctx, event); err != nil {
		h.log.Warn("Failed to publish prediction event: %v", err)
	}
}

func resultOutput(res predictor.Result) (*models.DelegateOutput, error) {
	if res.Err != nil {
		return nil, res.Err
	}
	return predictor.ParseOutput(res.Logs)
}

func predictionsCacheKey(tickers []string) string {
	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)
	return "predictions:" + strings.Join(sorted, ",")
}
