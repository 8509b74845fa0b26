package memory

import (
	"maps"
	"slices"

	"github.com/protolab/prototype-portal/internal/domain"
)

func prototypeID(p domain.Prototype) string { return p.ID }
func feedbackID(f domain.Feedback) string { return f.ID }
func userID(u domain.User) string { return u.ID }
func evaluationID(e domain.PortalEvaluation) string { return e.ID }

func clonePrototype(p domain.Prototype) domain.Prototype {
	p.Tags = slices.Clone(p.Tags)
	p.AllowedUsers = slices.Clone(p.AllowedUsers)
	return p
}

func cloneFeedback(f domain.Feedback) domain.Feedback {
	f.Categories = maps.Clone(f.Categories)
	return f
}

func cloneUser(u domain.User) domain.User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}

func cloneEvaluation(e domain.PortalEvaluation) domain.PortalEvaluation { return e }
