package validator

import (
	"encoding/json"
	"sort"

	"github.com/protolab/prototype-portal/internal/domain"
)

const feedbackSchema = `{
  "type": "object",
  "required": ["id", "prototype_id", "user_id", "rating", "created_at"],
  "properties": {
    "id": {"type": ["string", "integer"]},
    "prototype_id": {"type": ["string", "integer"]},
    "user_id": {"type": ["string", "integer"]},
    "rating": {"type": ["integer", "string"]},
    "comment": {"type": ["string", "null"]},
    "reaction": {"type": ["string", "null"]},
    "categories": {"type": ["string", "object", "null"]},
    "created_at": {"type": "string"}
  }
}`

type feedbackRow struct {
	ID          textID                   `json:"id"`
	PrototypeID textID                   `json:"prototype_id"`
	UserID      textID                   `json:"user_id"`
	Rating      number                   `json:"rating"`
	Comment     *string                  `json:"comment"`
	Reaction    *string                  `json:"reaction"`
	Categories  embedded[map[string]int] `json:"categories"`
	CreatedAt   timestamp                `json:"created_at"`
}

func coerceFeedback(raw []byte) (domain.Feedback, []domain.FieldError) {
	var r feedbackRow
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Feedback{}, []domain.FieldError{decodeError(err)}
	}

	var fe fields
	fe.notEmpty("id", string(r.ID))
	fe.notEmpty("prototype_id", string(r.PrototypeID))
	if !isWhole(float64(r.Rating)) {
		fe.add("rating", "must be a whole number, got %v", float64(r.Rating))
	}
	fe.rangeInt("rating", int(r.Rating), 1, 5)
	if !r.CreatedAt.set {
		fe.add("created_at", "is required")
	}

	f := domain.Feedback{
		ID:          string(r.ID),
		PrototypeID: string(r.PrototypeID),
		UserID:      string(r.UserID),
		Rating:      int(r.Rating),
		CreatedAt:   r.CreatedAt.Time,
	}
	if r.Comment != nil {
		f.Comment = *r.Comment
	}
	if r.Reaction != nil && *r.Reaction != "" {
		f.Reaction = domain.Reaction(*r.Reaction)
		if !f.Reaction.Valid() {
			fe.add("reaction", "must be one of like, love, dislike, got %q", *r.Reaction)
		}
	}
	if r.Categories.set && len(r.Categories.Value) > 0 {
		names := make([]string, 0, len(r.Categories.Value))
		for name := range r.Categories.Value {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fe.rangeInt("categories."+name, r.Categories.Value[name], 1, 5)
		}
		f.Categories = r.Categories.Value
	}
	return f, fe
}

var feedbackValidator = newValidator("feedback", feedbackSchema, coerceFeedback)

// Feedback validates rows of the feedback table.
func Feedback() *Validator[domain.Feedback] { return feedbackValidator }
