package domain

import "time"

// Prototype is a product listing shown in the portal catalogue.
type Prototype struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ImageURL     string      `json:"imageUrl"`
	Tags         []string    `json:"tags"`
	Rating       float64     `json:"rating"`
	Author       string      `json:"author"`
	AuthorID     string      `json:"authorId"`
	AccessLevel  AccessLevel `json:"accessLevel"`
	AllowedUsers []string    `json:"allowedUsers,omitempty"`
	DemoURL      string      `json:"demoUrl,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Feedback is a single user reaction to a prototype.
type Feedback struct {
	ID          string         `json:"id"`
	PrototypeID string         `json:"prototypeId"`
	UserID      string         `json:"userId"`
	Rating      int            `json:"rating"`
	Comment     string         `json:"comment,omitempty"`
	Reaction    Reaction       `json:"reaction,omitempty"`
	Categories  map[string]int `json:"categories,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// User is a portal account.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// PMFMetrics holds the four fixed product-market-fit dimensions, each in [0, 1].
type PMFMetrics struct {
	UserEngagement       float64 `json:"userEngagement"`
	ProblemSolution      float64 `json:"problemSolution"`
	MarketPotential      float64 `json:"marketPotential"`
	TechnicalFeasibility float64 `json:"technicalFeasibility"`
}

// ProductMarketFit is recomputed on demand and never stored.
type ProductMarketFit struct {
	ID              string     `json:"id"`
	PrototypeID     string     `json:"prototypeId"`
	Score           int        `json:"score"`
	Analysis        string     `json:"analysis"`
	Recommendations []string   `json:"recommendations"`
	Metrics         PMFMetrics `json:"metrics"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// LikertResponses is the fixed five-question evaluation grid, each answer 1..5.
type LikertResponses struct {
	Usability   int `json:"usability"`
	Design      int `json:"design"`
	Performance int `json:"performance"`
	Features    int `json:"features"`
	Reliability int `json:"reliability"`
}

// PortalEvaluation is a user's evaluation of the portal itself.
type PortalEvaluation struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId"`
	OverallRating       int             `json:"overallRating"`
	LikertResponses     LikertResponses `json:"likertResponses"`
	QualitativeResponse string          `json:"qualitativeResponse"`
	Sentiment           Sentiment       `json:"sentiment,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// Trend is one category movement reported by an evaluation analysis.
type Trend struct {
	Category string  `json:"category"`
	Trend    float64 `json:"trend"`
	Insight  string  `json:"insight"`
}

// SentimentDistribution holds three fractions that sum to 1.
type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// EvaluationAnalysis is a derived aggregate over a set of evaluations.
type EvaluationAnalysis struct {
	ID                    string                `json:"id"`
	EvaluationIDs         []string              `json:"evaluationIds"`
	Summary               string                `json:"summary"`
	Recommendations       []string              `json:"recommendations"`
	Trends                []Trend               `json:"trends"`
	SentimentDistribution SentimentDistribution `json:"sentimentDistribution"`
	CreatedAt             time.Time             `json:"createdAt"`
}
