package query

import (
	"strings"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// maxKeywords caps the developer-search keyword list.
const maxKeywords = 5

// maxDescriptionTerms caps how many technical terms from the description can
// join the keyword list.
const maxDescriptionTerms = 4

// languageNames maps skill names to the developer-profile API's language
// qualifier values.
var languageNames = map[string]string{
	"javascript": "javascript",
	"typescript": "typescript",
	"python":     "python",
	"java":       "java",
	"go":         "go",
	"golang":     "go",
	"ruby":       "ruby",
	"rust":       "rust",
	"c":          "c",
	"c++":        "cpp",
	"c#":         "csharp",
	"php":        "php",
	"swift":      "swift",
	"kotlin":     "kotlin",
	"scala":      "scala",
	"elixir":     "elixir",
	"dart":       "dart",
	"r":          "r",
	"react":      "javascript",
	"node.js":    "javascript",
	"nodejs":     "javascript",
	"vue":        "javascript",
	"angular":    "typescript",
	"django":     "python",
	"rails":      "ruby",
	"spring":     "java",
	"laravel":    "php",
	"flutter":    "dart",
}

// defaultLanguage is used when no skill maps to a known language.
const defaultLanguage = "javascript"

// technicalVocabulary is the closed keyword list used for extracting skills
// from free text: common languages, frameworks, databases, cloud platforms,
// and methodologies.
var technicalVocabulary = []string{
	// languages
	"javascript", "typescript", "python", "java", "golang", "ruby", "rust",
	"c++", "c#", "php", "swift", "kotlin", "scala", "elixir", "sql",
	// frameworks and runtimes
	"react", "angular", "vue", "svelte", "next.js", "node.js", "express",
	"django", "flask", "fastapi", "rails", "spring", "laravel", ".net",
	"flutter", "react native",
	// databases and data stores
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"dynamodb", "cassandra", "sqlite",
	// infrastructure and cloud
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure", "linux",
	"jenkins", "ci/cd", "graphql", "grpc", "kafka", "rabbitmq",
	// methodologies
	"agile", "scrum", "devops", "tdd", "microservices",
}

// canonicalSkillNames holds display-cased forms for vocabulary entries whose
// proper casing is not plain title case.
var canonicalSkillNames = map[string]string{
	"javascript":    "JavaScript",
	"typescript":    "TypeScript",
	"golang":        "Go",
	"c++":           "C++",
	"c#":            "C#",
	"php":           "PHP",
	"sql":           "SQL",
	"next.js":       "Next.js",
	"node.js":       "Node.js",
	"fastapi":       "FastAPI",
	".net":          ".NET",
	"postgresql":    "PostgreSQL",
	"postgres":      "PostgreSQL",
	"mysql":         "MySQL",
	"mongodb":       "MongoDB",
	"dynamodb":      "DynamoDB",
	"sqlite":        "SQLite",
	"aws":           "AWS",
	"gcp":           "GCP",
	"ci/cd":         "CI/CD",
	"graphql":       "GraphQL",
	"grpc":          "gRPC",
	"rabbitmq":      "RabbitMQ",
	"tdd":           "TDD",
	"devops":        "DevOps",
	"react native":  "React Native",
	"elasticsearch": "Elasticsearch",
}

func canonicalSkillName(kw string) string {
	if c, ok := canonicalSkillNames[kw]; ok {
		return c
	}
	return titleCaseWords(kw)
}

// titleCaseWords capitalizes the first letter of each word. The vocabulary
// is ASCII-only so byte-level casing is safe.
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// titleStopWords are title tokens that carry no search value.
var titleStopWords = map[string]bool{
	"with": true, "and": true, "the": true, "for": true, "lead": true,
	"level": true, "team": true, "senior": true, "junior": true,
	"staff": true, "principal": true, "head": true, "chief": true,
	"engineer": true, "developer": true, "specialist": true,
	"years": true, "experience": true,
}

// PrimaryLanguage maps the first skill that appears in the language table to
// the developer API's language qualifier, defaulting to "javascript".
func PrimaryLanguage(skills []string) string {
	for _, s := range skills {
		if lang, ok := languageNames[strings.ToLower(strings.TrimSpace(s))]; ok {
			return lang
		}
	}
	return defaultLanguage
}

// ExtractKeywords builds the developer-search keyword list for a job. Title
// words (at least four characters, stop-word filtered) come first, then the
// seniority keyword, then up to four technical terms from the description.
// The final list is deduplicated and capped at five entries.
func ExtractKeywords(job *types.Job) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] || len(out) >= maxKeywords {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, word := range strings.Fields(job.Title) {
		word = strings.Trim(word, "()/,-")
		if len(word) < 4 || titleStopWords[strings.ToLower(word)] {
			continue
		}
		add(word)
	}

	if kw := SeniorityKeyword(job); kw != "" {
		add(kw)
	}

	terms := 0
	lower := strings.ToLower(job.Description)
	for _, kw := range technicalVocabulary {
		if terms >= maxDescriptionTerms || len(out) >= maxKeywords {
			break
		}
		if containsWord(lower, kw) && !seen[kw] {
			add(kw)
			terms++
		}
	}

	return out
}
