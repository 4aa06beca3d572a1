package matching

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Entry declares one canonical skill and the lowercase aliases used to find it in text.
type Entry struct {
	Canonical string
	Aliases   []string
}

type compiledEntry struct {
	canonical string
	aliases   []string
	patterns  []*regexp.Regexp
}

// Taxonomy is immutable once built and safe for concurrent readers.
// Declaration order is significant: extraction walks entries in that order.
type Taxonomy struct {
	entries     []compiledEntry
	byAlias     map[string]int
	byCanonical map[string]int
}

func NewTaxonomy(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{
		entries:     make([]compiledEntry, 0, len(entries)),
		byAlias:     make(map[string]int),
		byCanonical: make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		canonical := strings.TrimSpace(e.Canonical)
		if canonical == "" {
			return nil, fmt.Errorf("%w: empty canonical name", ErrInvalidTaxonomy)
		}
		key := strings.ToLower(canonical)
		if _, ok := t.byCanonical[key]; ok {
			return nil, fmt.Errorf("%w: duplicate canonical name %q", ErrInvalidTaxonomy, canonical)
		}
		if len(e.Aliases) == 0 {
			return nil, fmt.Errorf("%w: %q has no aliases", ErrInvalidTaxonomy, canonical)
		}

		idx := len(t.entries)
		ce := compiledEntry{
			canonical: canonical,
			aliases:   make([]string, 0, len(e.Aliases)),
			patterns:  make([]*regexp.Regexp, 0, len(e.Aliases)),
		}
		for _, a := range e.Aliases {
			alias := strings.ToLower(strings.TrimSpace(a))
			if alias == "" {
				return nil, fmt.Errorf("%w: %q has an empty alias", ErrInvalidTaxonomy, canonical)
			}
			if owner, ok := t.byAlias[alias]; ok {
				owned := canonical
				if owner != idx {
					owned = t.entries[owner].canonical
				}
				return nil, fmt.Errorf("%w: alias %q already belongs to %q", ErrInvalidTaxonomy, alias, owned)
			}
			re, err := compileLiteral(alias)
			if err != nil {
				return nil, fmt.Errorf("%w: alias %q: %v", ErrInvalidTaxonomy, alias, err)
			}
			t.byAlias[alias] = idx
			ce.aliases = append(ce.aliases, alias)
			ce.patterns = append(ce.patterns, re)
		}

		t.byCanonical[key] = idx
		t.entries = append(t.entries, ce)
	}

	for alias, owner := range t.byAlias {
		if idx, ok := t.byCanonical[alias]; ok && idx != owner {
			return nil, fmt.Errorf("%w: alias %q of %q collides with canonical %q",
				ErrInvalidTaxonomy, alias, t.entries[owner].canonical, t.entries[idx].canonical)
		}
	}

	return t, nil
}

func MustNewTaxonomy(entries []Entry) *Taxonomy {
	t, err := NewTaxonomy(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Aliases returns a copy of the aliases of a canonical skill, or nil when unknown.
func (t *Taxonomy) Aliases(canonical string) []string {
	if t == nil {
		return nil
	}
	idx, ok := t.byCanonical[strings.ToLower(strings.TrimSpace(canonical))]
	if !ok {
		return nil
	}
	out := make([]string, len(t.entries[idx].aliases))
	copy(out, t.entries[idx].aliases)
	return out
}

// CanonicalFor resolves an alias or a canonical name, case-insensitively.
func (t *Taxonomy) CanonicalFor(raw string) (string, bool) {
	if t == nil {
		return "", false
	}
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	if idx, ok := t.byAlias[key]; ok {
		return t.entries[idx].canonical, true
	}
	if idx, ok := t.byCanonical[key]; ok {
		return t.entries[idx].canonical, true
	}
	return "", false
}

// Canonicals lists canonical names in declaration order.
func (t *Taxonomy) Canonicals() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.canonical)
	}
	return out
}

func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
