package jira

import (
	"context"
	"net/url"
	"strconv"
)

// Issue is a Jira work item, limited to the fields the TUI renders.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary   string   `json:"summary"`
	Status    NamedRef `json:"status"`
	IssueType NamedRef `json:"issuetype"`
	Assignee  *User    `json:"assignee"`
}

type NamedRef struct {
	Name string `json:"name"`
}

const defaultMaxResults = 50

// SearchIssues runs a JQL search and returns the matching issues in server
// order.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]Issue, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(defaultMaxResults))
	params.Set("fields", "summary,status,issuetype,assignee")

	var page struct {
		Issues []Issue `json:"issues"`
	}
	if err := c.get(ctx, "search", params, &page); err != nil {
		return nil, err
	}
	return page.Issues, nil
}
