package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"jobmatch/internal/domain/matching"

	"github.com/go-playground/validator/v10"
)

// MatchQuery holds the query parameters of GET /api/jobs/matches.
type MatchQuery struct {
	Keywords      string `query:"keywords" validate:"max=200"`
	MinMatchScore *int   `query:"minMatchScore" validate:"omitempty,gte=0"`
	Location      string `query:"location" validate:"max=100"`
	ContractType  string `query:"contractType" validate:"max=50"`
	SortBy        string `query:"sortBy" validate:"omitempty,oneof=score matchScore date location"`
	SortOrder     string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page          *int   `query:"page" validate:"omitempty,gte=1"`
	PageSize      *int   `query:"pageSize" validate:"omitempty,gte=1,lte=200"`
	Refresh       bool   `query:"refresh"`

	// set when any filter or sort parameter was present in the request
	hasFilters bool
}

// FieldError describes one rejected query parameter.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func queryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func (q *MatchQuery) MarkFiltered() { q.hasFilters = true }

func (q MatchQuery) HasFilters() bool { return q.hasFilters }

// Validate returns the rejected fields, or nil when the query is valid.
func (q MatchQuery) Validate() []FieldError {
	err := queryValidator().Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "query", Rule: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// Paging returns the requested page and size, zero for whichever is absent.
func (q MatchQuery) Paging() (page, size int) {
	if q.Page != nil {
		page = *q.Page
	}
	if q.PageSize != nil {
		size = *q.PageSize
	}
	return page, size
}

// Filters converts the query into engine filters. It returns nil when the
// request carried no filter or sort parameter.
func (q MatchQuery) Filters() *matching.Filters {
	if !q.hasFilters {
		return nil
	}
	f := &matching.Filters{
		MinMatchScore: q.MinMatchScore,
		Location:      strings.TrimSpace(q.Location),
		ContractType:  strings.TrimSpace(q.ContractType),
		SortOrder:     matching.SortOrder(q.SortOrder),
	}
	switch q.SortBy {
	case "matchScore":
		f.SortBy = matching.SortByScore
	default:
		f.SortBy = matching.SortKey(q.SortBy)
	}
	return f
}
