package matching

import "strings"

type Extractor struct {
	taxonomy *Taxonomy
}

func NewExtractor(t *Taxonomy) *Extractor {
	if t == nil {
		t = DefaultTaxonomy()
	}
	return &Extractor{taxonomy: t}
}

// ExtractSkills returns the canonical skills found in text, in taxonomy
// declaration order, each at most once.
func (e *Extractor) ExtractSkills(text string) []string {
	out := make([]string, 0)
	if e == nil || e.taxonomy == nil || strings.TrimSpace(text) == "" {
		return out
	}
	lower := strings.ToLower(text)

	for _, entry := range e.taxonomy.entries {
		for _, re := range entry.patterns {
			if re.MatchString(lower) {
				out = append(out, entry.canonical)
				break
			}
		}
	}
	return out
}

// NormalizeUserSkills maps raw profile skills to canonical names. Skills the
// taxonomy does not know are kept verbatim.
func (e *Extractor) NormalizeUserSkills(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		name := s
		if e != nil {
			if canonical, ok := e.taxonomy.CanonicalFor(s); ok {
				name = canonical
			}
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
