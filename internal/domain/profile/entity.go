package profile

type Profile struct {
	Name                   string   `json:"name" mapstructure:"name" validate:"required"`
	Location               string   `json:"location" mapstructure:"location"`
	Skills                 []string `json:"skills" mapstructure:"skills" validate:"dive,required"`
	Experience             []string `json:"experience" mapstructure:"experience"`
	PreferredContractTypes []string `json:"preferredContractTypes" mapstructure:"preferred-contract-types"`
}

// Default is the built-in candidate profile used when no profile file is configured.
func Default() Profile {
	return Profile{
		Name:     "Achraf Bougattaya",
		Location: "Nanterre, Île-de-France",
		Skills: []string{
			"Python", "JavaScript", "TypeScript",
			"React", "HTML", "CSS", "Next.js",
			"Node.js", "Express", "FastAPI",
			"GraphQL", "REST",
			"Mapbox", "DeckGL", "D3",
			"SQL", "PostgreSQL", "MongoDB", "Elasticsearch",
			"Docker", "Kubernetes", "GCP", "Git", "CI/CD",
			"Cypress", "Jest",
			"Agile",
		},
		Experience: []string{
			"Front-End Developer",
			"Full-Stack Developer",
			"Web Developer",
			"Freelance",
		},
		PreferredContractTypes: []string{"CDI", "CDD"},
	}
}
