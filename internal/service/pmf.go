package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/logging"
)

// PMFService derives product-market fit and evaluation insights. Metrics are
// computed locally; narrative text comes from the text generator, and a
// generator failure is returned to the caller.
type PMFService struct {
	gen   generation.TextGenerationClient
	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

func NewPMFService(gen generation.TextGenerationClient, log *zap.Logger) *PMFService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PMFService{gen: gen, now: time.Now, newID: uuid.NewString, log: log}
}

// ComputeMetrics aggregates feedback into the four PMF dimensions:
//   - userEngagement: half the share of positive reactions plus half the share with a comment
//   - problemSolution: average rating rescaled from 1..5 to 0..1
//   - marketPotential: average innovation and design category score, rescaled
//   - technicalFeasibility: average performance and usability category score, rescaled
//
// Dimensions with no data are 0.
func ComputeMetrics(feedback []domain.Feedback) domain.PMFMetrics {
	if len(feedback) == 0 {
		return domain.PMFMetrics{}
	}

	var positive, commented, ratingSum int
	market := &mean{}
	tech := &mean{}
	for _, f := range feedback {
		if f.Reaction == domain.ReactionLike || f.Reaction == domain.ReactionLove {
			positive++
		}
		if strings.TrimSpace(f.Comment) != "" {
			commented++
		}
		ratingSum += f.Rating
		market.addCategory(f.Categories, "innovation", "design")
		tech.addCategory(f.Categories, "performance", "usability")
	}

	n := float64(len(feedback))
	return domain.PMFMetrics{
		UserEngagement:       round2(0.5*float64(positive)/n + 0.5*float64(commented)/n),
		ProblemSolution:      round2(rescale(float64(ratingSum) / n)),
		MarketPotential:      round2(market.rescaled()),
		TechnicalFeasibility: round2(tech.rescaled()),
	}
}

// MetricsScore is the 0..100 score implied by metrics alone.
func MetricsScore(m domain.PMFMetrics) int {
	avg := (m.UserEngagement + m.ProblemSolution + m.MarketPotential + m.TechnicalFeasibility) / 4
	return int(math.Round(clamp01(avg) * 100))
}

type mean struct {
	sum, n float64
}

func (m *mean) addCategory(cats map[string]int, names ...string) {
	for _, name := range names {
		if v, ok := cats[name]; ok {
			m.sum += float64(v)
			m.n++
		}
	}
}

func (m *mean) rescaled() float64 {
	if m.n == 0 {
		return 0
	}
	return rescale(m.sum / m.n)
}

// rescale maps a 1..5 score onto 0..1.
func rescale(v float64) float64 {
	return clamp01((v - 1) / 4)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type pmfAnswer struct {
	Score           *float64 `json:"score"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeFeedback computes metrics for p and asks the generator for a score,
// analysis and recommendations. Unstructured output is kept as the analysis;
// the score then comes from the metrics and recommendations from any bullet
// lines in the text.
func (s *PMFService) AnalyzeFeedback(ctx context.Context, p domain.Prototype, feedback []domain.Feedback) (domain.ProductMarketFit, error) {
	if s.gen == nil {
		return domain.ProductMarketFit{}, generation.ErrDisabled
	}

	metrics := ComputeMetrics(feedback)
	out, err := s.gen.Complete(ctx, pmfPrompt(p, feedback, metrics))
	if err != nil {
		return domain.ProductMarketFit{}, fmt.Errorf("analyze feedback for prototype %s: %w", p.ID, err)
	}

	pmf := domain.ProductMarketFit{
		ID:          s.newID(),
		PrototypeID: p.ID,
		Metrics:     metrics,
		CreatedAt:   s.now().UTC(),
	}

	var ans pmfAnswer
	if err := generation.DecodeJSON(out, &ans); err != nil || ans.Score == nil || strings.TrimSpace(ans.Analysis) == "" {
		logging.FromContext(ctx, s.log).Info("pmf answer not structured, parsing free text", zap.String("prototype_id", p.ID))
		pmf.Score = MetricsScore(metrics)
		pmf.Analysis = strings.TrimSpace(out)
		pmf.Recommendations = bulletLines(out)
		return pmf, nil
	}

	pmf.Score = int(math.Round(math.Max(0, math.Min(100, *ans.Score))))
	pmf.Analysis = strings.TrimSpace(ans.Analysis)
	pmf.Recommendations = compactLines(ans.Recommendations)
	return pmf, nil
}

// GenerateInsights returns free-text guidance for p given its PMF analysis.
func (s *PMFService) GenerateInsights(ctx context.Context, p domain.Prototype, pmf domain.ProductMarketFit) (string, error) {
	if s.gen == nil {
		return "", generation.ErrDisabled
	}
	out, err := s.gen.Complete(ctx, insightsPrompt(p, pmf))
	if err != nil {
		return "", fmt.Errorf("generate insights for prototype %s: %w", p.ID, err)
	}
	return strings.TrimSpace(out), nil
}

type evaluationAnswer struct {
	Summary         string         `json:"summary"`
	Recommendations []string       `json:"recommendations"`
	Trends          []domain.Trend `json:"trends"`
}

// SentimentDistribution returns the share of each sentiment. Evaluations
// without a sentiment count as neutral; an empty set is entirely neutral.
func SentimentDistribution(evals []domain.PortalEvaluation) domain.SentimentDistribution {
	if len(evals) == 0 {
		return domain.SentimentDistribution{Neutral: 1}
	}
	var pos, neg int
	for _, e := range evals {
		switch e.Sentiment {
		case domain.SentimentPositive:
			pos++
		case domain.SentimentNegative:
			neg++
		}
	}
	n := float64(len(evals))
	d := domain.SentimentDistribution{
		Positive: float64(pos) / n,
		Negative: float64(neg) / n,
	}
	d.Neutral = 1 - d.Positive - d.Negative
	return d
}

// AnalyzeEvaluations summarizes evals. The sentiment distribution is always
// computed locally; summary, recommendations and trends come from the
// generator.
func (s *PMFService) AnalyzeEvaluations(ctx context.Context, evals []domain.PortalEvaluation) (domain.EvaluationAnalysis, error) {
	if s.gen == nil {
		return domain.EvaluationAnalysis{}, generation.ErrDisabled
	}

	dist := SentimentDistribution(evals)
	out, err := s.gen.Complete(ctx, evaluationsPrompt(evals, dist))
	if err != nil {
		return domain.EvaluationAnalysis{}, fmt.Errorf("analyze evaluations: %w", err)
	}

	ids := make([]string, 0, len(evals))
	for _, e := range evals {
		ids = append(ids, e.ID)
	}

	analysis := domain.EvaluationAnalysis{
		ID:                    s.newID(),
		EvaluationIDs:         ids,
		SentimentDistribution: dist,
		CreatedAt:             s.now().UTC(),
		Recommendations:       []string{},
		Trends:                []domain.Trend{},
	}

	var ans evaluationAnswer
	if err := generation.DecodeJSON(out, &ans); err != nil {
		logging.FromContext(ctx, s.log).Info("evaluation answer not structured, keeping text", zap.Error(err))
		analysis.Summary = strings.TrimSpace(out)
		analysis.Recommendations = bulletLines(out)
		return analysis, nil
	}

	analysis.Summary = strings.TrimSpace(ans.Summary)
	analysis.Recommendations = compactLines(ans.Recommendations)
	if ans.Trends != nil {
		analysis.Trends = ans.Trends
	}
	return analysis, nil
}

// bulletLines collects list items ("- x", "* x", "1. x") from free text.
func bulletLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "), strings.HasPrefix(line, "• "):
			line = strings.TrimSpace(line[strings.Index(line, " ")+1:])
		default:
			i := strings.IndexAny(line, ".)")
			if i <= 0 || i > 3 || !isDigits(line[:i]) {
				continue
			}
			line = strings.TrimSpace(line[i+1:])
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func compactLines(items []string) []string {
	out := []string{}
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
