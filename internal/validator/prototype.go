package validator

import (
	"encoding/json"

	"github.com/protolab/prototype-portal/internal/domain"
)

const prototypeSchema = `{
  "type": "object",
  "required": ["id", "title", "description", "image_url", "tags", "rating", "author", "author_id", "access_level", "created_at"],
  "properties": {
    "id": {"type": ["string", "integer"]},
    "title": {"type": "string"},
    "description": {"type": "string"},
    "image_url": {"type": ["string", "null"]},
    "tags": {"type": ["string", "array"]},
    "rating": {"type": ["number", "string"]},
    "author": {"type": "string"},
    "author_id": {"type": ["string", "integer"]},
    "access_level": {"type": "string", "enum": ["public", "private", "restricted"]},
    "allowed_users": {"type": ["string", "array", "null"]},
    "demo_url": {"type": ["string", "null"]},
    "created_at": {"type": "string"}
  }
}`

type prototypeRow struct {
	ID           textID    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Tags         list      `json:"tags"`
	Rating       number    `json:"rating"`
	Author       string    `json:"author"`
	AuthorID     textID    `json:"author_id"`
	AccessLevel  string    `json:"access_level"`
	AllowedUsers list      `json:"allowed_users"`
	DemoURL      *string   `json:"demo_url"`
	CreatedAt    timestamp `json:"created_at"`
}

func coercePrototype(raw []byte) (domain.Prototype, []domain.FieldError) {
	var r prototypeRow
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Prototype{}, []domain.FieldError{decodeError(err)}
	}

	var fe fields
	fe.notEmpty("id", string(r.ID))
	fe.notEmpty("title", r.Title)
	if r.Rating < 0 || r.Rating > 5 {
		fe.add("rating", "must be between 0 and 5, got %v", float64(r.Rating))
	}
	if !r.CreatedAt.set {
		fe.add("created_at", "is required")
	}

	p := domain.Prototype{
		ID:           string(r.ID),
		Title:        r.Title,
		Description:  r.Description,
		Tags:         []string(r.Tags),
		Rating:       float64(r.Rating),
		Author:       r.Author,
		AuthorID:     string(r.AuthorID),
		AccessLevel:  domain.AccessLevel(r.AccessLevel),
		AllowedUsers: []string(r.AllowedUsers),
		CreatedAt:    r.CreatedAt.Time,
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.DemoURL != nil {
		p.DemoURL = *r.DemoURL
	}
	if len(p.AllowedUsers) == 0 {
		p.AllowedUsers = nil
	}
	return p, fe
}

var prototypeValidator = newValidator("prototype", prototypeSchema, coercePrototype)

// Prototype validates rows of the prototypes table.
func Prototype() *Validator[domain.Prototype] { return prototypeValidator }
