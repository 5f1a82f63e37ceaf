package events

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

type PredictionEvent struct {
	UserID     string
	Tickers    []string
	Outcome    string
	DurationMs int64
	Timestamp  int64
}
