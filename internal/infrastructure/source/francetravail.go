package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"
)

const (
	franceTravailTokenURL  = "https://entreprise.francetravail.fr/connexion/oauth2/access_token?realm=/partenaire"
	franceTravailSearchURL = "https://api.francetravail.io/partenaire/offresdemploi/v2/offres/search"
	franceTravailDetailURL = "https://candidat.pole-emploi.fr/offres/recherche/detail/"

	franceTravailPages    = 3
	franceTravailPageSize = 150

	// Tokens are renewed this long before they expire.
	tokenExpiryDelta = 5 * time.Minute
)

var franceTravailScopes = []string{"api_offresdemploiv2", "o2dsoffre"}

type FranceTravailOptions struct {
	ClientID       string
	ClientSecret   string
	Region         string
	Domain         string
	PublishedSince string

	// Overridable endpoints, empty means production.
	TokenURL  string
	SearchURL string

	HTTPClient *http.Client
}

// FranceTravail searches the France Travail (ex Pôle Emploi) offers API.
type FranceTravail struct {
	opts   FranceTravailOptions
	client *http.Client
	logger *zap.Logger
}

func NewFranceTravail(opts FranceTravailOptions, log *zap.Logger) *FranceTravail {
	if opts.TokenURL == "" {
		opts.TokenURL = franceTravailTokenURL
	}
	if opts.SearchURL == "" {
		opts.SearchURL = franceTravailSearchURL
	}
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: defaultHTTPTimeout}
	}

	cc := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
		Scopes:       franceTravailScopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	// The token source outlives any single request, so it gets its own context.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(tokenCtx), tokenExpiryDelta)

	return &FranceTravail{
		opts: opts,
		client: &http.Client{
			Timeout:   base.Timeout,
			Transport: &oauth2.Transport{Base: base.Transport, Source: ts},
		},
		logger: logger.ForSource(log, string(job.SourceFranceTravail)),
	}
}

func (s *FranceTravail) Name() string {
	return string(job.SourceFranceTravail)
}

func (s *FranceTravail) Enabled() bool {
	return s != nil && s.opts.ClientID != "" && s.opts.ClientSecret != ""
}

type franceTravailResponse struct {
	Resultats []franceTravailOffer `json:"resultats"`
}

type franceTravailOffer struct {
	ID                 string `json:"id"`
	Intitule           string `json:"intitule"`
	Description        string `json:"description"`
	DateCreation       string `json:"dateCreation"`
	TypeContratLibelle string `json:"typeContratLibelle"`
	Entreprise         struct {
		Nom string `json:"nom"`
	} `json:"entreprise"`
	LieuTravail struct {
		Libelle string `json:"libelle"`
	} `json:"lieuTravail"`
	OrigineOffre struct {
		URLOrigine string `json:"urlOrigine"`
	} `json:"origineOffre"`
	Salaire struct {
		Libelle string `json:"libelle"`
	} `json:"salaire"`
}

// Search fetches all pages in parallel. The first page must succeed; a later
// page failing (typically a range past the result count) only truncates.
func (s *FranceTravail) Search(ctx context.Context, q Query) ([]job.Posting, error) {
	if !s.Enabled() {
		return nil, nil
	}
	q = q.Normalized()

	pages := make([][]job.Posting, franceTravailPages)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < franceTravailPages; i++ {
		g.Go(func() error {
			start := i * franceTravailPageSize
			items, err := s.fetchPage(gctx, q, start, start+franceTravailPageSize-1)
			if err != nil {
				if i == 0 {
					return fmt.Errorf("france travail page %d: %w", i+1, err)
				}
				s.logger.Warn("page fetch failed", zap.Int("page", i+1), zap.Error(err))
				return nil
			}
			pages[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]job.Posting, 0, franceTravailPages*franceTravailPageSize)
	for _, p := range pages {
		out = append(out, p...)
	}
	s.logger.Debug("search done", zap.String("keywords", q.Keywords), zap.Int("jobs", len(out)))
	return out, nil
}

func (s *FranceTravail) fetchPage(ctx context.Context, q Query, start, end int) ([]job.Posting, error) {
	params := url.Values{}
	params.Set("region", s.opts.Region)
	params.Set("grandDomaine", s.opts.Domain)
	params.Set("range", fmt.Sprintf("%d-%d", start, end))
	params.Set("publieeDepuis", s.opts.PublishedSince)
	if q.Keywords != "" {
		params.Set("motsCles", q.Keywords)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.SearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
	case http.StatusNoContent:
		return nil, nil
	default:
		return nil, statusError(resp)
	}

	var body franceTravailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make([]job.Posting, 0, len(body.Resultats))
	for _, o := range body.Resultats {
		if p, ok := o.toPosting(); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (o franceTravailOffer) toPosting() (job.Posting, bool) {
	id := strings.TrimSpace(o.ID)
	if id == "" {
		return job.Posting{}, false
	}
	return job.Posting{
		ID:           id,
		Title:        strings.TrimSpace(o.Intitule),
		Company:      pickNonEmpty(o.Entreprise.Nom, defaultCompany),
		Location:     pickNonEmpty(o.LieuTravail.Libelle, defaultLocation),
		Description:  CleanDescription(o.Description),
		URL:          pickNonEmpty(o.OrigineOffre.URLOrigine, franceTravailDetailURL+url.PathEscape(id)),
		DatePosted:   strings.TrimSpace(o.DateCreation),
		ContractType: strings.TrimSpace(o.TypeContratLibelle),
		Salary:       strings.TrimSpace(o.Salaire.Libelle),
		Source:       job.SourceFranceTravail,
	}, true
}
