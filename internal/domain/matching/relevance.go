package matching

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// defaultIncludePatterns mark a title as a developer or engineering role.
var defaultIncludePatterns = []string{
	// "developer" in several languages
	`d[ée]veloppeu(?:r|se)s?`, `developers?`, `devs?`, `entwickler(?:in)?`, `desarrollador(?:a)?`,
	`sviluppatore`, `programmeu(?:r|se)`, `programmers?`, `codeu(?:r|se)`,
	`software engineers?`, `ing[ée]nieu(?:r|e)s? (?:logiciel|d[ée]veloppement|informatique|devops|cloud|web|full[- ]?stack|front[- ]?end|back[- ]?end|data|syst[èe]mes?|r[ée]seaux?|test|qa)`,

	// role qualifiers
	`front[- ]?end`, `back[- ]?end`, `full[- ]?stack`, `devops`, `devsecops`, `sre`,
	`site reliability`, `mobile (?:ios|android)`, `int[ée]grateu(?:r|rice) web`,

	// lead and architect only with a technical qualifier
	`tech(?:nical)? lead`, `lead (?:dev|developer|d[ée]veloppeur|tech|technique|engineer)`,
	`architecte? (?:logiciel|software|cloud|technique|applicati(?:f|on)|solutions?|si|data|java|web)`,
	`(?:software|cloud|solutions?|technical|application) architects?`,

	// named technologies
	`react(?:\.?js)?`, `angular`, `vue(?:\.?js)?`, `node(?:\.?js)?`, `next\.?js`,
	`javascript`, `typescript`, `python`, `java`, `kotlin`, `golang`, `php`, `ruby`,
	`rust`, `scala`, `c#`, `c\+\+`, `\.net`, `symfony`, `laravel`, `django`, `flutter`,
}

// defaultExcludePatterns win over any include hit.
var defaultExcludePatterns = []string{
	// accounting and administration
	`comptables?`, `comptabilit[ée]`, `accountants?`, `accounting`, `assistante?s?`,
	`administrati(?:f|ve|on) (?:et|&) (?:financier|comptable)`, `secr[ée]taire`,
	`gestionnaire (?:de )?(?:paie|paye|administrati(?:f|ve)|comptable|locati(?:f|ve))`,
	`contr[ôo]leu(?:r|se) (?:de gestion|financi(?:er|ère))`, `auditeu(?:r|se) financi`,

	// commercial and sales
	`commercial(?:e)?s?`, `business developers?`, `d[ée]veloppeu(?:r|se) (?:commercial|d['’]affaires|business)`,
	`d[ée]veloppement commercial`, `sales`, `vendeu(?:r|se)s?`, `account (?:manager|executive)`,
	`charg[ée]e? (?:de client[èe]le|d['’]affaires)`, `t[ée]l[ée]conseill(?:er|[èe]re)`, `marketing`,

	// HR and recruitment
	`rh`, `ressources humaines`, `human resources`, `recruteu(?:r|se)s?`, `recruiters?`,
	`talent acquisition`, `charg[ée]e? de recrutement`,

	// legal
	`juristes?`, `juridique`, `avocat(?:e)?s?`, `legal`, `paralegal`, `notaire`,

	// real estate
	`immobili(?:er|[èe]re)`, `real estate`, `agent immobilier`, `n[ée]gociat(?:eur|rice)`,

	// "responsable" of non-technical departments
	`responsable (?:commercial(?:e)?|marketing|rh|ressources humaines|comptable|administrati(?:f|ve)|juridique|achats?|magasin|boutique|agence|client[èe]le|paie|logistique|communication)`,
}

// TitleFilter classifies job titles as developer-relevant. Immutable and safe
// for concurrent use.
type TitleFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func NewTitleFilter(include, exclude []string) (*TitleFilter, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &TitleFilter{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := compileBounded(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// IsRelevant reports whether a title names a developer role. An exclude hit
// rejects immediately; otherwise at least one include pattern must match.
func (f *TitleFilter) IsRelevant(title string) bool {
	if f == nil {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	for _, re := range f.exclude {
		if re.MatchString(t) {
			return false
		}
	}
	for _, re := range f.include {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

var (
	defaultTitleFilterOnce sync.Once
	defaultTitleFilter     *TitleFilter
)

func DefaultTitleFilter() *TitleFilter {
	defaultTitleFilterOnce.Do(func() {
		f, err := NewTitleFilter(defaultIncludePatterns, defaultExcludePatterns)
		if err != nil {
			panic(err)
		}
		defaultTitleFilter = f
	})
	return defaultTitleFilter
}
