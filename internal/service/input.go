package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/validator"
)

type checker struct {
	entity string
	errs   []domain.FieldError
}

func (c *checker) fail(field, format string, args ...any) {
	c.errs = append(c.errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) required(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "is required")
	}
}

func (c *checker) between(field string, v, lo, hi int) {
	if v < lo || v > hi {
		c.fail(field, "must be between %d and %d", lo, hi)
	}
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Entity: c.entity, Errors: c.errs}
}

// normalizePrototype trims input and applies defaults before it is checked.
func normalizePrototype(p domain.Prototype) domain.Prototype {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Tags = validator.SplitList(strings.Join(p.Tags, ","))
	if p.AccessLevel == "" {
		p.AccessLevel = domain.AccessPublic
	}
	if p.AccessLevel == domain.AccessRestricted {
		p.AllowedUsers = validator.SplitList(strings.Join(p.AllowedUsers, ","))
	} else {
		p.AllowedUsers = nil
	}
	return p
}

func checkPrototype(p domain.Prototype) error {
	c := checker{entity: "prototype"}
	c.required("title", p.Title)
	c.required("description", p.Description)
	c.required("authorId", p.AuthorID)
	if p.Rating < 0 || p.Rating > 5 {
		c.fail("rating", "must be between 0 and 5")
	}
	if !p.AccessLevel.Valid() {
		c.fail("accessLevel", "must be public, private or restricted")
	}
	return c.err()
}

func checkFeedback(f domain.Feedback) error {
	c := checker{entity: "feedback"}
	c.required("prototypeId", f.PrototypeID)
	c.between("rating", f.Rating, 1, 5)
	if f.Reaction != "" && !f.Reaction.Valid() {
		c.fail("reaction", "must be like, love or dislike")
	}
	names := make([]string, 0, len(f.Categories))
	for name := range f.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.between("categories."+name, f.Categories[name], 1, 5)
	}
	return c.err()
}

func checkUser(u domain.User) error {
	c := checker{entity: "user"}
	if !validator.ValidEmail(u.Email) {
		c.fail("email", "must be a valid address")
	}
	c.required("name", u.Name)
	if !u.Role.Valid() {
		c.fail("role", "must be admin, member or reader")
	}
	return c.err()
}

func checkEvaluation(e domain.PortalEvaluation) error {
	c := checker{entity: "evaluation"}
	c.required("userId", e.UserID)
	c.between("overallRating", e.OverallRating, 1, 5)
	lr := e.LikertResponses
	c.between("likertResponses.usability", lr.Usability, 1, 5)
	c.between("likertResponses.design", lr.Design, 1, 5)
	c.between("likertResponses.performance", lr.Performance, 1, 5)
	c.between("likertResponses.features", lr.Features, 1, 5)
	c.between("likertResponses.reliability", lr.Reliability, 1, 5)
	return c.err()
}
