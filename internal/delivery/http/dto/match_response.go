package dto

import (
	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/usecase"
)

type MatchedJobResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	DatePosted    string   `json:"datePosted"`
	ContractType  string   `json:"contractType,omitempty"`
	Salary        string   `json:"salary,omitempty"`
	Source        string   `json:"source"`
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	TotalSkills   int      `json:"totalSkills"`
}

type ProfileResponse struct {
	Name                   string   `json:"name"`
	Location               string   `json:"location"`
	Skills                 []string `json:"skills"`
	Experience             []string `json:"experience"`
	PreferredContractTypes []string `json:"preferredContractTypes"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type MatchesResponse struct {
	Jobs       []MatchedJobResponse `json:"jobs"`
	TotalJobs  int                  `json:"totalJobs"`
	Profile    ProfileResponse      `json:"profile"`
	Pagination PaginationResponse   `json:"pagination"`
	CachedAt   int64                `json:"cachedAt"`
}

func NewMatchedJobResponse(m job.MatchedJob) MatchedJobResponse {
	skills := m.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	return MatchedJobResponse{
		ID:            m.ID,
		Title:         m.Title,
		Company:       m.Company,
		Location:      m.Location,
		Description:   m.Description,
		URL:           m.URL,
		DatePosted:    m.DatePosted,
		ContractType:  m.ContractType,
		Salary:        m.Salary,
		Source:        string(m.Source),
		MatchScore:    m.MatchScore,
		MatchedSkills: skills,
		TotalSkills:   m.TotalSkills,
	}
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		Name:                   p.Name,
		Location:               p.Location,
		Skills:                 nonNil(p.Skills),
		Experience:             nonNil(p.Experience),
		PreferredContractTypes: nonNil(p.PreferredContractTypes),
	}
}

func NewMatchesResponse(res usecase.MatchResult) MatchesResponse {
	jobs := make([]MatchedJobResponse, 0, len(res.Jobs))
	for _, m := range res.Jobs {
		jobs = append(jobs, NewMatchedJobResponse(m))
	}
	return MatchesResponse{
		Jobs:      jobs,
		TotalJobs: res.TotalJobs,
		Profile:   NewProfileResponse(res.Profile),
		Pagination: PaginationResponse{
			Page:       res.Pagination.Page,
			PageSize:   res.Pagination.PageSize,
			TotalPages: res.Pagination.TotalPages,
		},
		CachedAt: res.CachedAt.UnixMilli(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
