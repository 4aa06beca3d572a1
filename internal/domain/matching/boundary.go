package matching

import "regexp"

// Letters with diacritics are word characters too, so "java" never matches
// inside "javaé" and "développeur" is a single word.
const (
	wordLeft  = `(?:^|[^\p{L}\p{N}_])`
	wordRight = `(?:$|[^\p{L}\p{N}_])`
)

func compileBounded(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)` + wordLeft + `(?:` + expr + `)` + wordRight)
}

func compileLiteral(alias string) (*regexp.Regexp, error) {
	return compileBounded(regexp.QuoteMeta(alias))
}
