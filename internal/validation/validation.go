package validation

import (
	"regexp"
	"strings"
)

// PhonePattern accepts an optional leading + followed by digits, spaces,
// parentheses, and hyphens.
var PhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,19}$`)

// NormalizePhone trims surrounding whitespace from a phone number.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// ValidatePhone checks that a phone number looks like one.
func ValidatePhone(phone string) bool {
	return PhonePattern.MatchString(phone)
}

// ValidateName checks that a display name is present and not absurdly long.
func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= 200
}

// ValidateQuestion checks that a question is present and within bounds.
func ValidateQuestion(question string) bool {
	question = strings.TrimSpace(question)
	return question != "" && len(question) <= 2000
}

// ValidateAnswer checks that a supervisor answer is present and within bounds.
func ValidateAnswer(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && len(answer) <= 5000
}
