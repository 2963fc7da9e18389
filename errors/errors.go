package errors

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// HumanizeOption renders an option or field name for display:
// "logFileLevel" and "LogFileLevel" both become "Log File Level".
func HumanizeOption(name string) string {
	caser := cases.Title(language.English)
	words := splitCamel(name)
	for i, word := range words {
		words[i] = caser.String(strings.ToLower(word))
	}
	return strings.Join(words, " ")
}

// splitCamel breaks a camelCase or PascalCase name at each upper-case
// letter that follows a lower-case one.
func splitCamel(s string) []string {
	if s == "" {
		return nil
	}

	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		if isUpper(s[i]) && !isUpper(s[i-1]) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
