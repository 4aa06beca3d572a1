package source

import (
	"context"
	"time"

	"jobmatch/internal/domain/job"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Mock serves a fixed set of postings for development without credentials.
// Dates are relative to the clock so the set never looks stale.
type Mock struct {
	now func() time.Time
}

func NewMock(now func() time.Time) *Mock {
	if now == nil {
		now = time.Now
	}
	return &Mock{now: now}
}

func (s *Mock) Name() string {
	return string(job.SourceMock)
}

func (s *Mock) Search(_ context.Context, _ Query) ([]job.Posting, error) {
	now := s.now().UTC()
	daysAgo := func(n int) string {
		return now.Add(-time.Duration(n) * 24 * time.Hour).Format(isoMillis)
	}

	return []job.Posting{
		{
			ID:           "1",
			Title:        "Développeur Front-End React",
			Company:      "TechCorp Paris",
			Location:     "Paris 8e",
			Description:  "Nous recherchons un développeur Front-End expérimenté en React et TypeScript. Vous travaillerez sur des applications web modernes utilisant React, Redux, et TypeScript. Connaissance de Node.js et GraphQL appréciée. Environnement Agile/Scrum.",
			URL:          "https://example.com/job/1",
			DatePosted:   daysAgo(0),
			ContractType: "CDI",
			Salary:       "45K€ - 55K€",
			Source:       job.SourceMock,
		},
		{
			ID:           "2",
			Title:        "Full-Stack Developer JavaScript",
			Company:      "StartupHub",
			Location:     "Nanterre",
			Description:  "Rejoignez notre équipe pour développer notre plateforme SaaS. Stack technique : React, Node.js, Express, PostgreSQL. Expérience avec Docker et CI/CD requise. Télétravail partiel possible.",
			URL:          "https://example.com/job/2",
			DatePosted:   daysAgo(1),
			ContractType: "CDI",
			Salary:       "50K€ - 60K€",
			Source:       job.SourceMock,
		},
		{
			ID:           "3",
			Title:        "Développeur Web Cartographie",
			Company:      "GeoTech Solutions",
			Location:     "La Défense",
			Description:  "Développement d'applications de cartographie web avec MapboxGL et DeckGL. Expertise JavaScript/TypeScript requise. Visualisation de données avec D3.js. Travail sur des projets innovants de data visualization.",
			URL:          "https://example.com/job/3",
			DatePosted:   daysAgo(2),
			ContractType: "CDI",
			Salary:       "48K€ - 58K€",
			Source:       job.SourceMock,
		},
		{
			ID:           "4",
			Title:        "Ingénieur Backend Python",
			Company:      "DataCorp",
			Location:     "Paris 12e",
			Description:  "Développement backend en Python avec Django. Base de données PostgreSQL. API REST. Connaissance de AWS appréciée.",
			URL:          "https://example.com/job/4",
			DatePosted:   daysAgo(3),
			ContractType: "CDD",
			Salary:       "40K€ - 50K€",
			Source:       job.SourceMock,
		},
		{
			ID:           "5",
			Title:        "Lead Developer Front-End",
			Company:      "Innovation Labs",
			Location:     "Boulogne-Billancourt",
			Description:  "Lead technique pour équipe front-end. React, TypeScript, Next.js. Architecture de composants, tests Jest, code reviews. Méthodologie Agile. Management d'une équipe de 3-4 développeurs.",
			URL:          "https://example.com/job/5",
			DatePosted:   daysAgo(4),
			ContractType: "CDI",
			Salary:       "55K€ - 70K€",
			Source:       job.SourceMock,
		},
	}, nil
}
