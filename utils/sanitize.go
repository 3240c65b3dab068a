package utils

import "github.com/microcosm-cc/bluemonday"

var bodyPolicy = bluemonday.UGCPolicy()

// Sanitize renders user HTML in post and comment bodies safe for display.
// Stored text is never passed through it.
func Sanitize(input string) string {
	return bodyPolicy.Sanitize(input)
}
