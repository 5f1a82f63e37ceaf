package models

type ModelFeature struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
	Value      string  `json:"value"`
}

type ModelExplanation struct {
	Features   []ModelFeature `json:"features"`
	Prediction string         `json:"prediction"`
	Confidence float64        `json:"confidence"`
}

type ExplainableAIResponse struct {
	ModelExplanation ModelExplanation `json:"modelExplanation"`
	LastUpdated      string           `json:"lastUpdated"`
}

type Sentiment struct {
	Overall  string  `json:"overall"`
	Score    float64 `json:"score"`
	Positive int     `json:"positive"`
	Neutral  int     `json:"neutral"`
	Negative int     `json:"negative"`
}

type NLPAnalysisResponse struct {
	Sentiment   Sentiment `json:"sentiment"`
	Keywords    []string  `json:"keywords"`
	Summary     string    `json:"summary"`
	LastUpdated string    `json:"lastUpdated"`
}

type StressScenario struct {
	Name           string  `json:"name"`
	PortfolioLoss  float64 `json:"portfolioLoss,omitempty"`
	PercentageLoss float64 `json:"percentageLoss,omitempty"`
	PortfolioGain  float64 `json:"portfolioGain,omitempty"`
	PercentageGain float64 `json:"percentageGain,omitempty"`
	Probability    string  `json:"probability"`
}

type RiskMetrics struct {
	ValueAtRisk float64 `json:"valueAtRisk"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	SharpeRatio float64 `json:"sharpeRatio"`
}

type StressTestingResponse struct {
	Scenarios   []StressScenario `json:"scenarios"`
	RiskMetrics RiskMetrics      `json:"riskMetrics"`
	LastUpdated string           `json:"lastUpdated"`
}
