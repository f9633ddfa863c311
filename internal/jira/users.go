package jira

import "context"

// AssignableUsers searches users who can be assigned to issues, optionally
// scoped to the issue identified by issueKey. The server's ranking is
// preserved in the returned order. An empty query lists all assignable
// users rather than searching.
func (c *Client) AssignableUsers(ctx context.Context, query, issueKey string) ([]User, error) {
	params := AssignableSearchParams(query, issueKey, c.variant)
	var users []User
	if err := c.get(ctx, "user/assignable/search", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Myself returns the authenticated user, validating the connection.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var me User
	if err := c.get(ctx, "myself", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// Projects lists the projects visible to the authenticated user. Cloud
// paginates through /project/search; Data Center returns a plain array
// from /project.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	if c.variant == VariantCloud {
		var page struct {
			Values []Project `json:"values"`
		}
		if err := c.get(ctx, "project/search", nil, &page); err != nil {
			return nil, err
		}
		return page.Values, nil
	}
	var projects []Project
	if err := c.get(ctx, "project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
