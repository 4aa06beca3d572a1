package job

type Source string

const (
	SourceFranceTravail Source = "france-travail"
	SourceAdzuna        Source = "adzuna"
	SourceMock          Source = "mock"
)

// Posting is a normalized job offer. IDs are unique within one batch only.
type Posting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	DatePosted   string `json:"datePosted"`
	ContractType string `json:"contractType,omitempty"`
	Salary       string `json:"salary,omitempty"`
	Source       Source `json:"source"`
}

type MatchedJob struct {
	Posting
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	TotalSkills   int      `json:"totalSkills"`
}
