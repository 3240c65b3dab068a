package models

import (
	"strconv"
	"strings"
)

// Category classifies a post. The stored and wire form is the name.
type Category string

const (
	CategoryAnnouncement Category = "Announcement"
	CategoryEvent        Category = "Event"
	CategoryNews         Category = "News"
	CategoryDiscussion   Category = "Discussion"
	CategoryHelp         Category = "Help"
	CategoryOther        Category = "Other"
)

// Categories lists every category in display order; index+1 is the numeric code.
var Categories = []Category{
	CategoryAnnouncement,
	CategoryEvent,
	CategoryNews,
	CategoryDiscussion,
	CategoryHelp,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	return c.Code() != 0
}

// Code returns the 1-based numeric code, or 0 for an unknown category.
func (c Category) Code() int {
	for i, known := range Categories {
		if c == known {
			return i + 1
		}
	}
	return 0
}

// ParseCategory accepts a category name (any case) or its numeric code.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(Categories) {
			return Categories[n-1], true
		}
		return "", false
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}
