package jira

import (
	"fmt"
	"strings"
)

// User is a Jira user as returned by the user search endpoints. Cloud
// identifies users by account ID; Data Center by login name.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
}

// ID returns the variant-appropriate stable identifier for the user.
func (u User) ID() string {
	if u.AccountID != "" {
		return u.AccountID
	}
	return u.Name
}

// Project is a Jira project reference.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// APIError is Jira's error envelope, carried alongside the HTTP status.
type APIError struct {
	StatusCode int               `json:"-"`
	Messages   []string          `json:"errorMessages"`
	Errors     map[string]string `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("jira: %s (status %d)", strings.Join(e.Messages, "; "), e.StatusCode)
	}
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for field, msg := range e.Errors {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		return fmt.Sprintf("jira: %s (status %d)", strings.Join(parts, "; "), e.StatusCode)
	}
	return fmt.Sprintf("jira: request failed with status %d", e.StatusCode)
}
