package validator

import (
	"encoding/json"

	"github.com/protolab/prototype-portal/internal/domain"
)

const evaluationSchema = `{
  "type": "object",
  "required": ["id", "user_id", "overall_rating", "likert_responses", "qualitative_response", "created_at"],
  "properties": {
    "id": {"type": ["string", "integer"]},
    "user_id": {"type": ["string", "integer"]},
    "overall_rating": {"type": ["integer", "string"]},
    "likert_responses": {"type": ["string", "object"]},
    "qualitative_response": {"type": "string"},
    "sentiment": {"type": ["string", "null"]},
    "created_at": {"type": "string"}
  }
}`

type evaluationRow struct {
	ID                  textID                           `json:"id"`
	UserID              textID                           `json:"user_id"`
	OverallRating       number                           `json:"overall_rating"`
	LikertResponses     embedded[domain.LikertResponses] `json:"likert_responses"`
	QualitativeResponse string                           `json:"qualitative_response"`
	Sentiment           *string                          `json:"sentiment"`
	CreatedAt           timestamp                        `json:"created_at"`
}

func coerceEvaluation(raw []byte) (domain.PortalEvaluation, []domain.FieldError) {
	var r evaluationRow
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.PortalEvaluation{}, []domain.FieldError{decodeError(err)}
	}

	var fe fields
	fe.notEmpty("id", string(r.ID))
	fe.rangeInt("overall_rating", int(r.OverallRating), 1, 5)
	if !r.LikertResponses.set {
		fe.add("likert_responses", "is required")
	} else {
		lr := r.LikertResponses.Value
		fe.rangeInt("likert_responses.usability", lr.Usability, 1, 5)
		fe.rangeInt("likert_responses.design", lr.Design, 1, 5)
		fe.rangeInt("likert_responses.performance", lr.Performance, 1, 5)
		fe.rangeInt("likert_responses.features", lr.Features, 1, 5)
		fe.rangeInt("likert_responses.reliability", lr.Reliability, 1, 5)
	}
	if !r.CreatedAt.set {
		fe.add("created_at", "is required")
	}

	e := domain.PortalEvaluation{
		ID:                  string(r.ID),
		UserID:              string(r.UserID),
		OverallRating:       int(r.OverallRating),
		LikertResponses:     r.LikertResponses.Value,
		QualitativeResponse: r.QualitativeResponse,
		CreatedAt:           r.CreatedAt.Time,
	}
	if r.Sentiment != nil && *r.Sentiment != "" {
		e.Sentiment = domain.Sentiment(*r.Sentiment)
		if !e.Sentiment.Valid() {
			fe.add("sentiment", "must be one of positive, neutral, negative, got %q", *r.Sentiment)
		}
	}
	return e, fe
}

var evaluationValidator = newValidator("evaluation", evaluationSchema, coerceEvaluation)

// Evaluation validates rows of the portal_evaluations table.
func Evaluation() *Validator[domain.PortalEvaluation] { return evaluationValidator }
