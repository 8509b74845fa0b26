package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/protolab/prototype-portal/internal/domain"
)

func imagePrompt(description string) string {
	return "Create a professional, modern visualization for a tech prototype: " + description
}

func sentimentPrompt(text string) string {
	return "You are a sentiment analysis expert. Classify the following text as 'positive', 'neutral', or 'negative'. " +
		"Answer with the single word only.\n\nText:\n" + text
}

type feedbackSummary struct {
	Rating     int             `json:"rating"`
	Comment    string          `json:"comment,omitempty"`
	Categories map[string]int  `json:"categories,omitempty"`
	Reaction   domain.Reaction `json:"reaction,omitempty"`
}

func pmfPrompt(p domain.Prototype, fb []domain.Feedback, m domain.PMFMetrics) string {
	summary := make([]feedbackSummary, 0, len(fb))
	for _, f := range fb {
		summary = append(summary, feedbackSummary{Rating: f.Rating, Comment: f.Comment, Categories: f.Categories, Reaction: f.Reaction})
	}
	data, _ := json.MarshalIndent(summary, "", "  ")

	var b strings.Builder
	b.WriteString("You are a product market fit analyst specializing in emerging technologies.\n")
	b.WriteString("Analyze the following product feedback and provide insights about product-market fit.\n\n")
	fmt.Fprintf(&b, "Product: %s\nDescription: %s\nTags: %s\n\n", p.Title, p.Description, strings.Join(p.Tags, ", "))
	fmt.Fprintf(&b, "Computed metrics (0-1): userEngagement=%.2f problemSolution=%.2f marketPotential=%.2f technicalFeasibility=%.2f\n\n",
		m.UserEngagement, m.ProblemSolution, m.MarketPotential, m.TechnicalFeasibility)
	fmt.Fprintf(&b, "Feedback Data:\n%s\n\n", data)
	b.WriteString(`Respond with JSON only, using this structure:
{"score": <integer 0-100>, "analysis": "<detailed analysis>", "recommendations": ["<recommendation>", ...]}`)
	return b.String()
}

func insightsPrompt(p domain.Prototype, pmf domain.ProductMarketFit) string {
	var b strings.Builder
	b.WriteString("You are a product strategy consultant specializing in emerging technologies.\n")
	b.WriteString("Based on the following product market fit analysis, generate actionable insights.\n\n")
	fmt.Fprintf(&b, "Product: %s\nPMF Score: %d\nAnalysis: %s\n\n", p.Title, pmf.Score, pmf.Analysis)
	fmt.Fprintf(&b, "Current Metrics:\n- User Engagement: %.2f\n- Problem-Solution Fit: %.2f\n- Market Potential: %.2f\n- Technical Feasibility: %.2f\n\n",
		pmf.Metrics.UserEngagement, pmf.Metrics.ProblemSolution, pmf.Metrics.MarketPotential, pmf.Metrics.TechnicalFeasibility)
	b.WriteString("Please provide:\n1. Key opportunities for improvement\n2. Potential risks and mitigation strategies\n3. Next steps for product development\n")
	return b.String()
}

func evaluationsPrompt(evals []domain.PortalEvaluation, dist domain.SentimentDistribution) string {
	data, _ := json.MarshalIndent(evals, "", "  ")

	var b strings.Builder
	b.WriteString("You are an AI analyst specializing in user feedback analysis.\n")
	b.WriteString("Analyze the following portal evaluations and provide insights.\n\n")
	fmt.Fprintf(&b, "Evaluations: %s\n\n", data)
	fmt.Fprintf(&b, "Sentiment distribution: positive=%.2f neutral=%.2f negative=%.2f\n\n", dist.Positive, dist.Neutral, dist.Negative)
	b.WriteString(`Respond with JSON only, using this structure:
{"summary": "<overall feedback>", "recommendations": ["<recommendation>", ...], "trends": [{"category": "<likert category>", "trend": <number -1..1>, "insight": "<text>"}]}`)
	return b.String()
}
