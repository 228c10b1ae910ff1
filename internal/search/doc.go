// Package search runs the bounded, paginated candidate search: crawl
// result pages through the browser primitives, extract candidate
// records with an injected page-script, score them against the query,
// deduplicate by profile URL, and stop once the target count is met.
package search
