package orchestrator

import (
	"regexp"
	"strings"
	"unicode"
)

// ExtractArguments derives invocation arguments from the raw user text when
// the model supplied none. It selects a rule set by category keywords in the
// qualified function name, tries an ordered list of pattern rules, and
// returns the first match. An empty mapping means nothing matched; the
// capability is then invoked without arguments, which providers tolerate.
//
// The function is pure: same name and text always yield the same mapping.
func ExtractArguments(qualifiedName, userText string) map[string]any {
	params := map[string]any{}
	lower := strings.ToLower(userText)

	switch {
	case strings.Contains(qualifiedName, "calculator"):
		if expr, ok := extractExpression(userText); ok {
			params["expression"] = expr
		}

	case strings.Contains(qualifiedName, "weather"):
		if location, ok := extractLocation(lower); ok {
			params["location"] = location
		}

	case strings.Contains(qualifiedName, "search") || strings.Contains(qualifiedName, "duck"):
		if subject, ok := extractSearchSubject(lower); ok {
			params["query"] = subject + " company information"
			params["search_type"] = "company"
		} else if len(strings.Fields(userText)) <= 10 {
			// Short messages are usable as-is once the search verbs are
			// stripped out.
			clean := strings.TrimSpace(searchVerbPattern.ReplaceAllString(lower, ""))
			if clean != "" {
				params["query"] = clean
			}
		}
	}

	return params
}

var expressionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)calculate\s+(.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)what's\s+(.+?)(?:\?|$)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?\s*[+\-*/×÷]\s*\d+(?:\.\d+)?(?:\s*[+\-*/×÷]\s*\d+(?:\.\d+)?)*)`),
	regexp.MustCompile(`([^a-zA-Z]*\d+[^a-zA-Z]*[+\-*/×÷][^a-zA-Z]*\d+[^a-zA-Z]*)`),
}

// extractExpression finds an arithmetic expression in the message. Unicode
// multiplication and division signs are normalized, and a candidate is only
// accepted if it actually contains an operator.
func extractExpression(text string) (string, bool) {
	for _, pattern := range expressionPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		expr := strings.TrimSpace(match[1])
		expr = strings.ReplaceAll(expr, "×", "*")
		expr = strings.ReplaceAll(expr, "÷", "/")
		if expr != "" && strings.ContainsAny(expr, "+-*/") {
			return expr, true
		}
	}
	return "", false
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`weather (?:in|for|at) ([^?.,!]+)`),
	regexp.MustCompile(`(?:what's|what is) (?:the )?weather (?:in|for|at) ([^?.,!]+)`),
}

var locationTrailerPattern = regexp.MustCompile(`\s+(today|tomorrow|now|\?|\.|!|right now|currently).*`)

// extractLocation finds a location in the lowercased message, strips
// trailing temporal words and punctuation, and title-cases the result.
// Locations shorter than two characters are rejected.
func extractLocation(lower string) (string, bool) {
	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		location := strings.TrimSpace(match[1])
		location = locationTrailerPattern.ReplaceAllString(location, "")
		if len(location) >= 2 {
			return titleCase(location), true
		}
	}
	return "", false
}

var searchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`research\s+(.+?)(?:\s+and|$)`),
	regexp.MustCompile(`search\s+(?:for\s+)?(.+?)(?:\s+and|$)`),
	regexp.MustCompile(`(?:information|data) (?:about|on) (.+?)(?:\s+and|$)`),
	regexp.MustCompile(`(?:find|look up) (.+?)(?:\s+and|$)`),
}

var searchVerbPattern = regexp.MustCompile(`(research|search|find|look up|information about)`)

// extractSearchSubject finds the research subject in the lowercased message.
func extractSearchSubject(lower string) (string, bool) {
	for _, pattern := range searchPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		subject := strings.TrimSpace(match[1])
		if subject != "" {
			return subject, true
		}
	}
	return "", false
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
