package memory

import (
	"fmt"
	"time"

	"github.com/protolab/prototype-portal/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedPrototypes returns the catalogue fixtures.
func SeedPrototypes() []domain.Prototype {
	return []domain.Prototype{
		{
			ID:          "1",
			Title:       "Assistente Virtual Inteligente",
			Description: "Um protótipo de assistente virtual que utiliza processamento de linguagem natural para entender e responder perguntas dos usuários de forma contextual.",
			ImageURL:    "https://images.unsplash.com/photo-1531746790731-6c087fecd65a?auto=format&fit=crop&w=1600&q=80",
			Tags:        []string{"IA", "NLP", "Chatbot"},
			Rating:      4.5,
			Author:      "Lab Digital Itaú",
			AuthorID:    "1",
			AccessLevel: domain.AccessPublic,
			DemoURL:     "https://demo.example.com/assistant",
			CreatedAt:   day("2024-01-15"),
		},
		{
			ID:           "2",
			Title:        "Sistema de Biometria Facial",
			Description:  "Solução de autenticação biométrica que utiliza reconhecimento facial para garantir maior segurança no acesso a serviços bancários.",
			ImageURL:     "https://images.unsplash.com/photo-1563492065599-3520f775eeed?auto=format&fit=crop&w=1600&q=80",
			Tags:         []string{"Biometria", "Segurança", "IA"},
			Rating:       4.8,
			Author:       "Time de Segurança Digital",
			AuthorID:     "2",
			AccessLevel:  domain.AccessRestricted,
			AllowedUsers: []string{"1", "2"},
			CreatedAt:    day("2024-02-01"),
		},
		{
			ID:          "3",
			Title:       "Análise Preditiva de Investimentos",
			Description: "Ferramenta que utiliza machine learning para analisar tendências de mercado e sugerir estratégias de investimento personalizadas.",
			ImageURL:    "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?auto=format&fit=crop&w=1600&q=80",
			Tags:        []string{"Machine Learning", "Investimentos", "Análise de Dados"},
			Rating:      4.3,
			Author:      "Equipe de Inovação em Investimentos",
			AuthorID:    "1",
			AccessLevel: domain.AccessPrivate,
			DemoURL:     "https://demo.example.com/investments",
			CreatedAt:   day("2024-02-15"),
		},
	}
}

var seedReactions = []domain.Reaction{domain.ReactionLike, domain.ReactionLove, domain.ReactionLike, domain.ReactionDislike, domain.ReactionLove}

// SeedFeedback returns ten feedback entries per prototype. Values cycle so
// every fixture is reproducible.
func SeedFeedback(prototypes []domain.Prototype) []domain.Feedback {
	out := make([]domain.Feedback, 0, len(prototypes)*10)
	for _, p := range prototypes {
		for i := range 10 {
			out = append(out, domain.Feedback{
				ID:          fmt.Sprintf("%s-feedback-%d", p.ID, i),
				PrototypeID: p.ID,
				UserID:      fmt.Sprintf("user-%d", i),
				Rating:      3 + i%3,
				Comment:     fmt.Sprintf("Example feedback %d for %s", i+1, p.Title),
				Reaction:    seedReactions[i%len(seedReactions)],
				Categories: map[string]int{
					"usability":   3 + (i+1)%3,
					"innovation":  3 + (i+2)%3,
					"performance": 3 + i%3,
					"design":      3 + (i+1)%3,
				},
				CreatedAt: p.CreatedAt.AddDate(0, 0, i+1),
			})
		}
	}
	return out
}

// SeedUsers returns one account per role.
func SeedUsers(lastLogin time.Time) []domain.User {
	login := func() *time.Time { t := lastLogin; return &t }
	return []domain.User{
		{ID: "1", Email: "admin@itau.com.br", Name: "Administrador", Role: domain.RoleAdmin, CreatedAt: day("2024-01-01"), LastLogin: login()},
		{ID: "2", Email: "member@itau.com.br", Name: "Membro", Role: domain.RoleMember, CreatedAt: day("2024-01-15"), LastLogin: login()},
		{ID: "3", Email: "reader@itau.com.br", Name: "Leitor", Role: domain.RoleReader, CreatedAt: day("2024-02-01"), LastLogin: login()},
	}
}
