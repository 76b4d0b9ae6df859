package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for fields that
	// should only contain plain text (titles, locations, categories).
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated content with basic formatting.
	// Used for event descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and returns plain text.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}

// HTML sanitizes HTML content, allowing safe formatting tags. Removes
// <script>, <iframe>, event handlers, and style attributes.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
