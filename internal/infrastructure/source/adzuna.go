package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/logger"

	"go.uber.org/zap"
)

const (
	adzunaBaseURL   = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize  = 50
	adzunaMaxPages  = 2
	adzunaPageDelay = 300 * time.Millisecond
	adzunaIDPrefix  = "adzuna-"

	adzunaDefaultWhat  = "developer"
	adzunaDefaultWhere = "Île-de-France"
	adzunaWhatOr       = "développeur react javascript frontend backend fullstack node typescript"
	adzunaMaxDaysOld   = "14"
)

type AdzunaOptions struct {
	AppID   string
	AppKey  string
	Country string
	Where   string

	BaseURL    string
	// Pause between pages; zero means the default, negative disables it.
	PageDelay  time.Duration
	HTTPClient *http.Client
}

// Adzuna searches the Adzuna public jobs API. Pages are fetched one after
// another to stay under the rate limit.
type Adzuna struct {
	opts   AdzunaOptions
	client *http.Client
	logger *zap.Logger
}

func NewAdzuna(opts AdzunaOptions, log *zap.Logger) *Adzuna {
	if opts.BaseURL == "" {
		opts.BaseURL = adzunaBaseURL
	}
	if opts.Country == "" {
		opts.Country = "fr"
	}
	if opts.Where == "" {
		opts.Where = adzunaDefaultWhere
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = adzunaPageDelay
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Adzuna{
		opts:   opts,
		client: client,
		logger: logger.ForSource(log, string(job.SourceAdzuna)),
	}
}

func (s *Adzuna) Name() string {
	return string(job.SourceAdzuna)
}

func (s *Adzuna) Enabled() bool {
	return s != nil && s.opts.AppID != "" && s.opts.AppKey != ""
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Created      string  `json:"created"`
	RedirectURL  string  `json:"redirect_url"`
	ContractType string  `json:"contract_type"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// Search returns nil without error when credentials are missing. A failure on
// the first page is an error; later failures keep what was already fetched.
func (s *Adzuna) Search(ctx context.Context, q Query) ([]job.Posting, error) {
	if !s.Enabled() {
		return nil, nil
	}
	q = q.Normalized()

	out := make([]job.Posting, 0, adzunaMaxPages*adzunaPageSize)
	for page := 1; page <= adzunaMaxPages; page++ {
		if page > 1 && s.opts.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return out, nil
			case <-time.After(s.opts.PageDelay):
			}
		}

		batch, err := s.fetchPage(ctx, q, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("adzuna page %d: %w", page, err)
			}
			s.logger.Warn("page fetch failed", zap.Int("page", page), zap.Error(err))
			break
		}
		out = append(out, batch...)
		if len(batch) < adzunaPageSize {
			break
		}
	}

	s.logger.Debug("search done", zap.String("keywords", q.Keywords), zap.Int("jobs", len(out)))
	return out, nil
}

func (s *Adzuna) fetchPage(ctx context.Context, q Query, page int) ([]job.Posting, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", strings.TrimRight(s.opts.BaseURL, "/"), s.opts.Country, page)

	params := url.Values{}
	params.Set("app_id", s.opts.AppID)
	params.Set("app_key", s.opts.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("what", pickNonEmpty(q.Keywords, adzunaDefaultWhat))
	params.Set("where", s.opts.Where)
	params.Set("what_or", adzunaWhatOr)
	params.Set("max_days_old", adzunaMaxDaysOld)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
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

	if resp.StatusCode != http.StatusOK {
		// Rate limits and quota errors come back as non-200; treat as no results.
		s.logger.Warn("unexpected response", zap.Int("page", page), zap.Error(statusError(resp)))
		return nil, nil
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make([]job.Posting, 0, len(body.Results))
	for _, r := range body.Results {
		if p, ok := r.toPosting(); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r adzunaResult) toPosting() (job.Posting, bool) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return job.Posting{}, false
	}
	return job.Posting{
		ID:           adzunaIDPrefix + id,
		Title:        CleanDescription(r.Title),
		Company:      pickNonEmpty(r.Company.DisplayName, defaultCompany),
		Location:     pickNonEmpty(r.Location.DisplayName, defaultLocation),
		Description:  CleanDescription(r.Description),
		URL:          strings.TrimSpace(r.RedirectURL),
		DatePosted:   strings.TrimSpace(r.Created),
		ContractType: strings.TrimSpace(r.ContractType),
		Salary:       formatSalary(r.SalaryMin, r.SalaryMax),
		Source:       job.SourceAdzuna,
	}, true
}

// formatSalary renders yearly amounts in thousands of euros.
func formatSalary(minV, maxV float64) string {
	k := func(v float64) int { return int(math.Round(v / 1000)) }
	switch {
	case minV > 0 && maxV > 0:
		return fmt.Sprintf("%dK€ - %dK€", k(minV), k(maxV))
	case minV > 0:
		return fmt.Sprintf("%dK€+", k(minV))
	default:
		return ""
	}
}
