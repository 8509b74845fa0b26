package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/store"
)

// Generator is everything the services need from the generation seam.
type Generator interface {
	generation.TextGenerationClient
	generation.ImageGenerator
}

// Services bundles the entity services over one pair of data sources.
type Services struct {
	Prototypes  *PrototypeService
	Feedback    *FeedbackService
	Users       *UserService
	Evaluations *EvaluationService
	PMF         *PMFService
	Stats       *store.Stats
}

func New(src Sources, gen Generator, log *zap.Logger) *Services {
	if src.Stats == nil {
		src.Stats = &store.Stats{}
	}
	return &Services{
		Prototypes:  NewPrototypeService(src, gen, log),
		Feedback:    NewFeedbackService(src, log),
		Users:       NewUserService(src, log),
		Evaluations: NewEvaluationService(src, gen, log),
		PMF:         NewPMFService(gen, log),
		Stats:       src.Stats,
	}
}

// PMFReport is the analysis shown on a prototype's PMF page.
type PMFReport struct {
	Prototype     domain.Prototype        `json:"prototype"`
	FeedbackCount int                     `json:"feedbackCount"`
	PMF           domain.ProductMarketFit `json:"pmf"`
	Insights      string                  `json:"insights"`
}

// AnalyzePrototype loads a prototype and its feedback and runs the PMF
// analysis followed by insight generation.
func (s *Services) AnalyzePrototype(ctx context.Context, useMock bool, viewer *domain.User, id string) (PMFReport, error) {
	p, err := s.Prototypes.Get(ctx, useMock, viewer, id)
	if err != nil {
		return PMFReport{}, err
	}
	fb := s.Feedback.ListByPrototype(ctx, useMock, id)

	pmf, err := s.PMF.AnalyzeFeedback(ctx, p, fb)
	if err != nil {
		return PMFReport{}, err
	}
	insights, err := s.PMF.GenerateInsights(ctx, p, pmf)
	if err != nil {
		return PMFReport{}, err
	}
	return PMFReport{Prototype: p, FeedbackCount: len(fb), PMF: pmf, Insights: insights}, nil
}

// AnalyzeEvaluations runs the evaluation analysis over every stored evaluation.
func (s *Services) AnalyzeEvaluations(ctx context.Context, useMock bool) (domain.EvaluationAnalysis, error) {
	return s.PMF.AnalyzeEvaluations(ctx, s.Evaluations.List(ctx, useMock))
}

// PrototypeSummary is one dashboard row, computed without the generator.
type PrototypeSummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	AccessLevel   domain.AccessLevel `json:"accessLevel"`
	FeedbackCount int                `json:"feedbackCount"`
	AverageRating float64            `json:"averageRating"`
	Metrics       domain.PMFMetrics  `json:"metrics"`
	MetricsScore  int                `json:"metricsScore"`
}

type Dashboard struct {
	DataMode    domain.DataMode              `json:"dataMode"`
	Prototypes  []PrototypeSummary           `json:"prototypes"`
	Users       int                          `json:"users"`
	Evaluations int                          `json:"evaluations"`
	Sentiment   domain.SentimentDistribution `json:"sentiment"`
	DataSource  store.StatsSnapshot          `json:"dataSource"`
}

// Dashboard aggregates the admin overview for viewer.
func (s *Services) Dashboard(ctx context.Context, useMock bool, viewer *domain.User) Dashboard {
	mode := domain.ModeReal
	if useMock {
		mode = domain.ModeMock
	}

	protos := s.Prototypes.List(ctx, useMock, viewer, PrototypeFilter{})
	rows := make([]PrototypeSummary, 0, len(protos))
	for _, p := range protos {
		fb := s.Feedback.ListByPrototype(ctx, useMock, p.ID)
		m := ComputeMetrics(fb)
		rows = append(rows, PrototypeSummary{
			ID:            p.ID,
			Title:         p.Title,
			AccessLevel:   p.AccessLevel,
			FeedbackCount: len(fb),
			AverageRating: averageRating(fb),
			Metrics:       m,
			MetricsScore:  MetricsScore(m),
		})
	}

	evals := s.Evaluations.List(ctx, useMock)
	return Dashboard{
		DataMode:    mode,
		Prototypes:  rows,
		Users:       len(s.Users.List(ctx, useMock)),
		Evaluations: len(evals),
		Sentiment:   SentimentDistribution(evals),
		DataSource:  s.Stats.Snapshot(),
	}
}

func averageRating(fb []domain.Feedback) float64 {
	if len(fb) == 0 {
		return 0
	}
	sum := 0
	for _, f := range fb {
		sum += f.Rating
	}
	return round2(float64(sum) / float64(len(fb)))
}
