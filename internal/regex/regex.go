package regex

import "regexp"

var (
	// Prompt style patterns
	IncludeDirective = regexp.MustCompile(`\{include:(.*?)\}`)
	Placeholder      = regexp.MustCompile(`\{(original_title|issue_body)\}`)

	// GitHub patterns
	RepositorySlug = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)
