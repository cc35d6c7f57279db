package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFromJobDescription_Sections(t *testing.T) {
	e := newEngine()

	jd := `Senior Backend Engineer
We build payments infrastructure.

Responsibilities:
- Design APIs

Required:
- Go, PostgreSQL, Kubernetes
- Experience with REST APIs

Preferred:
- Terraform, Kafka
- Kubernetes operators
Nice to have: GraphQL`

	got := e.ExtractFromJobDescription(jd)
	assert.True(t, got.Sectioned)
	assert.Equal(t, []string{"go", "kubernetes", "postgresql", "rest api"}, got.Required)
	assert.Equal(t, []string{"graphql", "kafka", "terraform"}, got.Preferred)
	assert.Equal(t, []string{"go", "graphql", "kafka", "kubernetes", "postgresql", "rest api", "terraform"}, got.All)
}

func TestExtractFromJobDescription_RequiredWinsOverPreferred(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("Required: Python, SQL\nPreferred: python3, Docker")
	assert.Equal(t, []string{"python", "sql"}, got.Required)
	assert.Equal(t, []string{"docker"}, got.Preferred)

	for _, p := range got.Preferred {
		for _, r := range got.Required {
			assert.False(t, e.SameClass(p, r), "%q and %q share a class", p, r)
		}
	}
}

func TestExtractFromJobDescription_Unsectioned(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("Looking for a Python developer with Docker experience.")
	assert.False(t, got.Sectioned)
	assert.Empty(t, got.Required)
	assert.Empty(t, got.Preferred)
	assert.Equal(t, []string{"docker", "python"}, got.All)
}

func TestExtractFromJobDescription_HTML(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription(`<p>Required:</p><ul><li>Go</li><li>SQL</li></ul><p>Nice to have:</p><ul><li>Docker</li></ul>`)
	assert.Equal(t, []string{"go", "sql"}, got.Required)
	assert.Equal(t, []string{"docker"}, got.Preferred)
}

func TestExtractFromJobDescription_Empty(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("   ")
	assert.False(t, got.Sectioned)
	assert.Empty(t, got.Required)
	assert.Empty(t, got.Preferred)
	assert.Empty(t, got.All)
}

func TestExtractFromJobDescription_LongestTermWins(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("Required: Google Cloud Platform")
	assert.Equal(t, []string{"google cloud platform"}, got.Required)
}

func TestExtractFromJobDescription_SentenceHeaderIsNotASection(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("Requirements gathering with stakeholders using Excel")
	assert.False(t, got.Sectioned)
	assert.Contains(t, got.All, "excel")
}

func TestExtractFromJobDescription_HyphenatedHeaderWordInSentence(t *testing.T) {
	e := newEngine()

	got := e.ExtractFromJobDescription("Must-have skills include distributed systems experience\nWe build Go services")
	assert.False(t, got.Sectioned)
	assert.Empty(t, got.Required)
	assert.Contains(t, got.All, "go")
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Must-have skills:", true},
		{"Must-haves - Go, Kafka", true},
		{"Must-have", true},
		{"Requirements: Go", true},
		{"Must-have skills include distributed systems", false},
		{"Requirements gathering with stakeholders", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeaderLine(tt.line, requiredHeader))
		})
	}
}

func TestListItems(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"Go, Rust, Terraform", []string{"go", "rust", "terraform"}},
		{"- Kafka", []string{"kafka"}},
		{"Experience with Snowflake; dbt | Airflow", []string{"snowflake", "dbt", "airflow"}},
		{"You will partner with product, design and engineering", nil},
		{"3+ years, Go", []string{"go"}},
		{"etc.", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, listItems(tt.line))
		})
	}
}
