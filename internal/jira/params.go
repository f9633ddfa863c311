package jira

import (
	"net/url"
	"strings"
)

// Variant distinguishes the two Jira deployments, which disagree on the
// query parameter naming for assignable user search.
type Variant string

const (
	VariantCloud      Variant = "cloud"
	VariantDataCenter Variant = "datacenter"
)

// AssignableSearchParams maps a logical "search assignable users" request
// onto the wire parameters for the given backend variant.
//
// Cloud carries the search text under "query"; Data Center under
// "username". Each variant must never see the other's parameter name.
// Empty text (after trimming) produces neither parameter: the endpoint then
// lists all assignable users rather than searching for the empty string.
// The issue key scoping the search is passed through unchanged for both
// variants.
func AssignableSearchParams(query, issueKey string, variant Variant) url.Values {
	params := url.Values{}
	if text := strings.TrimSpace(query); text != "" {
		if variant == VariantDataCenter {
			params.Set("username", text)
		} else {
			params.Set("query", text)
		}
	}
	if issueKey != "" {
		params.Set("issueKey", issueKey)
	}
	return params
}
