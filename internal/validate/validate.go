package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Field limits — single source of truth for the upload, settings, and
// comment forms.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCommentLength     = 500
	MaxBioLength         = 300
	MinUsernameLength    = 3
	MaxUsernameLength    = 30
	MinPasswordLength    = 8
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func Title(s string) string {
	if strings.TrimSpace(s) == "" {
		return "title is required"
	}
	return checkLen(s, MaxTitleLength, "title")
}

func Description(s string) string { return checkLen(s, MaxDescriptionLength, "description") }
func CommentBody(s string) string { return checkLen(s, MaxCommentLength, "comment") }
func Bio(s string) string         { return checkLen(s, MaxBioLength, "bio") }

func Username(s string) string {
	if len(s) < MinUsernameLength {
		return fmt.Sprintf("username must be at least %d characters", MinUsernameLength)
	}
	if len(s) > MaxUsernameLength {
		return fmt.Sprintf("username must be %d characters or fewer", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(s) {
		return "username may only contain letters, digits, and underscores"
	}
	return ""
}

func Password(s string) string {
	if len(s) < MinPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	}
	return ""
}

// FieldLimits returns field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"title":       MaxTitleLength,
		"description": MaxDescriptionLength,
		"comment":     MaxCommentLength,
		"bio":         MaxBioLength,
		"username":    MaxUsernameLength,
	}
}
