package grammar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultTimeout bounds one LanguageTool request
const DefaultTimeout = 5 * time.Second

// maxResponseBytes bounds how much of a LanguageTool response is read
const maxResponseBytes = 2 << 20

// criticalIssueTypes are LanguageTool issue types counted as critical errors
var criticalIssueTypes = map[string]bool{
	"grammar":       true,
	"typographical": true,
}

// LanguageToolChecker calls a LanguageTool-compatible /v2/check endpoint
type LanguageToolChecker struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
	Client   *http.Client
}

// NewLanguageToolChecker creates a checker for baseURL (for example http://localhost:8081)
func NewLanguageToolChecker(baseURL string, timeout time.Duration) *LanguageToolChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LanguageToolChecker{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Language: "en-US",
		Timeout:  timeout,
		Client:   &http.Client{},
	}
}

type ltResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Rule    struct {
			ID        string `json:"id"`
			IssueType string `json:"issueType"`
			Category  struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text and maps every match to an issue
func (c *LanguageToolChecker) Check(ctx context.Context, text string) ([]types.GrammarIssue, error) {
	if strings.TrimSpace(text) == "" {
		return []types.GrammarIssue{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: "unexpected response", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Message: "failed to read response", Cause: err}
	}

	var parsed ltResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Message: "failed to decode response", Cause: err}
	}

	issues := make([]types.GrammarIssue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		severity := SeverityMinor
		if criticalIssueTypes[strings.ToLower(m.Rule.IssueType)] {
			severity = SeverityCritical
		}
		category := m.Rule.Category.ID
		if category == "" {
			category = m.Rule.IssueType
		}
		issues = append(issues, types.GrammarIssue{
			Category: strings.ToLower(category),
			Severity: severity,
			Message:  m.Message,
		})
	}
	return issues, nil
}
