package matching

import (
	"sort"
	"strings"
	"sync"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByScore    SortKey = "score"
	SortByDate     SortKey = "date"
	SortByLocation SortKey = "location"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters narrows and orders a matched result set. A nil *Filters means
// "no filtering, score descending".
type Filters struct {
	MinMatchScore *int
	Location      string
	ContractType  string
	SortBy        SortKey
	SortOrder     SortOrder
}

// Engine wires the relevance gate, the calculator and the filter/sort stage.
// It holds only immutable state; one Engine serves all requests.
type Engine struct {
	titles     *TitleFilter
	extractor  *Extractor
	calculator *Calculator
	collation  language.Tag
}

func NewEngine(t *Taxonomy, titles *TitleFilter) *Engine {
	if titles == nil {
		titles = DefaultTitleFilter()
	}
	ex := NewExtractor(t)
	return &Engine{
		titles:     titles,
		extractor:  ex,
		calculator: NewCalculator(ex),
		collation:  language.French,
	}
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// DefaultEngine is built once from the built-in taxonomy and title patterns.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(DefaultTaxonomy(), DefaultTitleFilter())
	})
	return defaultEngine
}

// MatchJobs runs the default engine.
func MatchJobs(jobs []job.Posting, prof profile.Profile, filters *Filters) []job.MatchedJob {
	return DefaultEngine().MatchJobs(jobs, prof, filters)
}

func (e *Engine) Extractor() *Extractor   { return e.extractor }
func (e *Engine) Calculator() *Calculator { return e.calculator }
func (e *Engine) Titles() *TitleFilter    { return e.titles }

// MatchJobs keeps developer-relevant postings, scores them against the
// profile, then applies filters and sorting. Input is never mutated.
func (e *Engine) MatchJobs(jobs []job.Posting, prof profile.Profile, filters *Filters) []job.MatchedJob {
	userSkills := e.extractor.NormalizeUserSkills(prof.Skills)

	out := make([]job.MatchedJob, 0, len(jobs))
	for _, p := range jobs {
		if !e.titles.IsRelevant(p.Title) {
			continue
		}
		res := e.calculator.score(p, prof.Skills, userSkills)
		out = append(out, job.MatchedJob{
			Posting:       p,
			MatchScore:    res.MatchScore,
			MatchedSkills: res.MatchedSkills,
			TotalSkills:   len(prof.Skills),
		})
	}

	if filters == nil {
		sortMatched(out, SortByScore, SortDesc, e.collation)
		return out
	}

	out = applyFilters(out, *filters)

	key := filters.SortBy
	if key == "" {
		key = SortByScore
	}
	order := filters.SortOrder
	if order == "" {
		order = SortDesc
	}

	sortMatched(out, key, order, e.collation)
	return out
}

func applyFilters(in []job.MatchedJob, f Filters) []job.MatchedJob {
	out := in
	if f.MinMatchScore != nil {
		minScore := *f.MinMatchScore
		out = keep(out, func(m job.MatchedJob) bool { return m.MatchScore >= minScore })
	}
	if f.Location != "" {
		loc := strings.ToLower(f.Location)
		out = keep(out, func(m job.MatchedJob) bool {
			return strings.Contains(strings.ToLower(m.Location), loc)
		})
	}
	if f.ContractType != "" {
		ct := f.ContractType
		out = keep(out, func(m job.MatchedJob) bool {
			return m.ContractType != "" && strings.EqualFold(m.ContractType, ct)
		})
	}
	return out
}

func keep(in []job.MatchedJob, pred func(job.MatchedJob) bool) []job.MatchedJob {
	out := make([]job.MatchedJob, 0, len(in))
	for _, m := range in {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

type sortable struct {
	job.MatchedJob
	postedAt time.Time
}

func sortMatched(items []job.MatchedJob, key SortKey, order SortOrder, tag language.Tag) {
	if len(items) < 2 {
		return
	}

	rows := make([]sortable, len(items))
	for i := range items {
		rows[i] = sortable{MatchedJob: items[i]}
		if key == SortByDate {
			rows[i].postedAt = ParsePostedDate(items[i].DatePosted)
		}
	}
	var col *collate.Collator
	if key == SortByLocation {
		// Collators keep scratch buffers, so each sort gets its own.
		col = collate.New(tag)
	}

	compare := func(a, b sortable) int {
		switch key {
		case SortByDate:
			return a.postedAt.Compare(b.postedAt)
		case SortByLocation:
			return col.CompareString(a.Location, b.Location)
		default:
			return a.MatchScore - b.MatchScore
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(rows[i], rows[j])
		if order == SortAsc {
			return c < 0
		}
		return c > 0
	})

	for i := range rows {
		items[i] = rows[i].MatchedJob
	}
}

var postedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePostedDate parses an ISO-8601 posting date. Unparsable input yields
// the zero time, which orders before every real date.
func ParsePostedDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
