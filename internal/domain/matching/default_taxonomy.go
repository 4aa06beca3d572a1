package matching

import "sync"

// defaultEntries is the built-in skill table. Order matters: when two skills
// could claim the same text, the one declared first is checked first.
var defaultEntries = []Entry{
	// Languages
	{Canonical: "Python", Aliases: []string{"python", "python3"}},
	{Canonical: "JavaScript", Aliases: []string{"javascript", "ecmascript", "es6", "vanilla js"}},
	{Canonical: "TypeScript", Aliases: []string{"typescript"}},
	{Canonical: "Java", Aliases: []string{"java", "java ee", "jee"}},
	{Canonical: "Kotlin", Aliases: []string{"kotlin"}},
	{Canonical: "Go", Aliases: []string{"golang"}},
	{Canonical: "Rust", Aliases: []string{"rust"}},
	{Canonical: "C#", Aliases: []string{"c#", "csharp"}},
	{Canonical: ".NET", Aliases: []string{".net", "dotnet", ".net core", "asp.net"}},
	{Canonical: "C++", Aliases: []string{"c++", "cpp"}},
	{Canonical: "PHP", Aliases: []string{"php"}},
	{Canonical: "Ruby", Aliases: []string{"ruby"}},
	{Canonical: "Swift", Aliases: []string{"swift"}},
	{Canonical: "Scala", Aliases: []string{"scala"}},

	// Frontend
	{Canonical: "React", Aliases: []string{"react", "react.js", "reactjs"}},
	{Canonical: "React Native", Aliases: []string{"react native", "react-native"}},
	{Canonical: "Redux", Aliases: []string{"redux", "redux toolkit"}},
	{Canonical: "Next.js", Aliases: []string{"next.js", "nextjs"}},
	{Canonical: "Angular", Aliases: []string{"angular", "angularjs"}},
	{Canonical: "Vue.js", Aliases: []string{"vue.js", "vuejs", "vue 3", "vue3"}},
	{Canonical: "Nuxt", Aliases: []string{"nuxt", "nuxt.js", "nuxtjs"}},
	{Canonical: "Svelte", Aliases: []string{"svelte", "sveltekit"}},
	{Canonical: "HTML", Aliases: []string{"html", "html5"}},
	{Canonical: "CSS", Aliases: []string{"css", "css3"}},
	{Canonical: "Sass", Aliases: []string{"sass", "scss"}},
	{Canonical: "Tailwind CSS", Aliases: []string{"tailwind", "tailwindcss", "tailwind css"}},
	{Canonical: "jQuery", Aliases: []string{"jquery"}},

	// Backend & runtime
	{Canonical: "Node.js", Aliases: []string{"node.js", "nodejs", "node"}},
	{Canonical: "Express", Aliases: []string{"express", "express.js", "expressjs"}},
	{Canonical: "NestJS", Aliases: []string{"nestjs", "nest.js"}},
	{Canonical: "FastAPI", Aliases: []string{"fastapi", "fast api"}},
	{Canonical: "Django", Aliases: []string{"django"}},
	{Canonical: "Flask", Aliases: []string{"flask"}},
	{Canonical: "Spring Boot", Aliases: []string{"spring boot", "springboot", "spring-boot"}},
	{Canonical: "Symfony", Aliases: []string{"symfony"}},
	{Canonical: "Laravel", Aliases: []string{"laravel"}},
	{Canonical: "Ruby on Rails", Aliases: []string{"ruby on rails", "rails", "ror"}},

	// APIs
	{Canonical: "GraphQL", Aliases: []string{"graphql", "apollo"}},
	{Canonical: "REST", Aliases: []string{"restful", "api rest", "rest api", "apis rest"}},
	{Canonical: "gRPC", Aliases: []string{"grpc"}},

	// Maps & visualization
	{Canonical: "Mapbox", Aliases: []string{"mapbox", "mapboxgl", "mapbox gl", "mapbox-gl"}},
	{Canonical: "DeckGL", Aliases: []string{"deck.gl", "deckgl"}},
	{Canonical: "D3", Aliases: []string{"d3", "d3.js", "d3js"}},
	{Canonical: "Leaflet", Aliases: []string{"leaflet"}},

	// Databases
	{Canonical: "SQL", Aliases: []string{"sql"}},
	{Canonical: "PostgreSQL", Aliases: []string{"postgresql", "postgres", "psql"}},
	{Canonical: "MySQL", Aliases: []string{"mysql", "mariadb"}},
	{Canonical: "MongoDB", Aliases: []string{"mongodb", "mongo"}},
	{Canonical: "Redis", Aliases: []string{"redis"}},
	{Canonical: "Elasticsearch", Aliases: []string{"elasticsearch", "elastic search", "opensearch"}},
	{Canonical: "Kafka", Aliases: []string{"kafka"}},
	{Canonical: "RabbitMQ", Aliases: []string{"rabbitmq"}},

	// DevOps & cloud
	{Canonical: "Docker", Aliases: []string{"docker", "docker-compose", "docker compose"}},
	{Canonical: "Kubernetes", Aliases: []string{"kubernetes", "k8s", "openshift"}},
	{Canonical: "Terraform", Aliases: []string{"terraform"}},
	{Canonical: "Ansible", Aliases: []string{"ansible"}},
	{Canonical: "AWS", Aliases: []string{"aws", "amazon web services"}},
	{Canonical: "GCP", Aliases: []string{"gcp", "google cloud", "google cloud platform"}},
	{Canonical: "Azure", Aliases: []string{"azure"}},
	{Canonical: "Git", Aliases: []string{"git", "github", "gitlab", "bitbucket"}},
	{Canonical: "CI/CD", Aliases: []string{"ci/cd", "cicd", "ci-cd", "ci cd", "github actions", "gitlab ci"}},
	{Canonical: "Jenkins", Aliases: []string{"jenkins"}},
	{Canonical: "Linux", Aliases: []string{"linux", "unix"}},

	// Testing
	{Canonical: "Jest", Aliases: []string{"jest"}},
	{Canonical: "Cypress", Aliases: []string{"cypress"}},
	{Canonical: "Playwright", Aliases: []string{"playwright"}},
	{Canonical: "Selenium", Aliases: []string{"selenium"}},

	// Methodologies
	{Canonical: "Agile", Aliases: []string{"agile", "agilité", "scrum", "kanban"}},
}

var (
	defaultTaxonomyOnce sync.Once
	defaultTaxonomy     *Taxonomy
)

// DefaultTaxonomy returns the shared built-in taxonomy, compiled on first use.
func DefaultTaxonomy() *Taxonomy {
	defaultTaxonomyOnce.Do(func() {
		defaultTaxonomy = MustNewTaxonomy(defaultEntries)
	})
	return defaultTaxonomy
}
