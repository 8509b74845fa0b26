package portal

import (
	"github.com/protolab/prototype-portal/internal/domain"
)

type prototypeRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	ImageURL     string             `json:"imageUrl"`
	Tags         []string           `json:"tags"`
	Rating       float64            `json:"rating"`
	Author       string             `json:"author"`
	AuthorID     string             `json:"authorId"`
	AccessLevel  domain.AccessLevel `json:"accessLevel"`
	AllowedUsers []string           `json:"allowedUsers"`
	DemoURL      string             `json:"demoUrl"`
}

// toDomain fills author fields the request leaves blank from author.
func (r prototypeRequest) toDomain(author domain.Prototype) domain.Prototype {
	p := domain.Prototype{
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		Tags:         r.Tags,
		Rating:       r.Rating,
		Author:       r.Author,
		AuthorID:     r.AuthorID,
		AccessLevel:  r.AccessLevel,
		AllowedUsers: r.AllowedUsers,
		DemoURL:      r.DemoURL,
	}
	if p.AuthorID == "" {
		p.AuthorID = author.AuthorID
	}
	if p.Author == "" {
		p.Author = author.Author
	}
	return p
}

// authoredBy is the author default for prototypes created by u.
func authoredBy(u *domain.User) domain.Prototype {
	if u == nil {
		return domain.Prototype{}
	}
	return domain.Prototype{AuthorID: u.ID, Author: u.Name}
}

type feedbackRequest struct {
	PrototypeID string          `json:"prototypeId"`
	UserID      string          `json:"userId"`
	Rating      int             `json:"rating"`
	Comment     string          `json:"comment"`
	Reaction    domain.Reaction `json:"reaction"`
	Categories  map[string]int  `json:"categories"`
}

func (r feedbackRequest) toDomain() domain.Feedback {
	return domain.Feedback{
		PrototypeID: r.PrototypeID,
		UserID:      r.UserID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Reaction:    r.Reaction,
		Categories:  r.Categories,
	}
}

type userRequest struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

func (r userRequest) toDomain() domain.User {
	return domain.User{Email: r.Email, Name: r.Name, Role: r.Role}
}

type evaluationRequest struct {
	OverallRating       int                    `json:"overallRating"`
	LikertResponses     domain.LikertResponses `json:"likertResponses"`
	QualitativeResponse string                 `json:"qualitativeResponse"`
	Sentiment           domain.Sentiment       `json:"sentiment"`
}

func (r evaluationRequest) toDomain(userID string) domain.PortalEvaluation {
	return domain.PortalEvaluation{
		UserID:              userID,
		OverallRating:       r.OverallRating,
		LikertResponses:     r.LikertResponses,
		QualitativeResponse: r.QualitativeResponse,
		Sentiment:           r.Sentiment,
	}
}

type modeRequest struct {
	Mode domain.DataMode `json:"mode" binding:"required"`
}

type modeResponse struct {
	Mode domain.DataMode `json:"mode"`
}
