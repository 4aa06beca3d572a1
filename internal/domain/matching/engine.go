package matching

import (
	"math"
	"strings"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"
)

const (
	fallbackPerSkill = 10
	fallbackCap      = 30
)

type Result struct {
	MatchScore    int
	MatchedSkills []string
}

type Calculator struct {
	extractor *Extractor
}

func NewCalculator(e *Extractor) *Calculator {
	if e == nil {
		e = NewExtractor(nil)
	}
	return &Calculator{extractor: e}
}

// Score rates how well a profile covers the skills a posting asks for.
func (c *Calculator) Score(p job.Posting, prof profile.Profile) Result {
	return c.score(p, prof.Skills, c.extractor.NormalizeUserSkills(prof.Skills))
}

func (c *Calculator) score(p job.Posting, rawSkills, userSkills []string) Result {
	text := p.Title + " " + p.Description
	jobSkills := c.extractor.ExtractSkills(text)

	if len(jobSkills) == 0 {
		return fallbackScore(text, rawSkills)
	}

	have := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		have[s] = struct{}{}
	}

	matched := make([]string, 0, len(jobSkills))
	for _, s := range jobSkills {
		if _, ok := have[s]; ok {
			matched = append(matched, s)
		}
	}

	ratio := float64(len(matched)) / float64(len(jobSkills))
	score := int(math.Round(ratio * float64(confidenceCap(len(jobSkills)))))

	return Result{
		MatchScore:    clampInt(score, 0, 100),
		MatchedSkills: matched,
	}
}

// fallbackScore handles postings where no known skill was detected: raw
// profile skills found anywhere in the text earn a low, capped score.
func fallbackScore(text string, rawSkills []string) Result {
	lower := strings.ToLower(text)
	matched := make([]string, 0)
	seen := make(map[string]struct{}, len(rawSkills))
	for _, s := range rawSkills {
		needle := strings.ToLower(strings.TrimSpace(s))
		if needle == "" {
			continue
		}
		if _, ok := seen[needle]; ok {
			continue
		}
		if strings.Contains(lower, needle) {
			seen[needle] = struct{}{}
			matched = append(matched, s)
		}
	}

	score := len(matched) * fallbackPerSkill
	if score > fallbackCap {
		score = fallbackCap
	}
	return Result{MatchScore: score, MatchedSkills: matched}
}

// confidenceCap limits the score of postings with few detectable requirements.
func confidenceCap(detected int) int {
	switch {
	case detected <= 0:
		return 0
	case detected == 1:
		return 50
	case detected == 2:
		return 70
	case detected == 3:
		return 85
	default:
		return 100
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
