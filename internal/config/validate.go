package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// maxQuestions bounds the per-session draw.
const maxQuestions = 200

// Validate checks the resolved config and reports every issue at once.
func (c *Config) Validate() error {
	var issues []Issue
	if c.Source == "" {
		issues = append(issues, Issue{Field: "source", Message: "a document path or URL is required"})
	}
	if c.Questions < 1 || c.Questions > maxQuestions {
		issues = append(issues, Issue{
			Field:   "questions",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", maxQuestions, c.Questions),
		})
	}
	if c.Request.TimeoutSecs < 1 {
		issues = append(issues, Issue{Field: "request.timeout_secs", Message: "must be at least 1"})
	}
	if c.Request.MaxAttempts < 1 {
		issues = append(issues, Issue{Field: "request.max_attempts", Message: "must be at least 1"})
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
