package agent

import (
	"strings"

	"helpdesk/internal/config"
)

// matchBusinessInfo scans the business-info table for the first topic whose
// topic name or any of its keywords appears as a substring of the lowercased
// question. Table order is definition order, so business info ties always
// break toward the earlier topic. Returns the canned answer and whether a
// topic matched.
func matchBusinessInfo(topics []config.BusinessTopic, question string) (string, bool) {
	normalized := strings.ToLower(question)

	for _, t := range topics {
		if strings.Contains(normalized, strings.ToLower(t.Topic)) {
			return t.Answer, true
		}
		for _, kw := range t.Keywords {
			if strings.Contains(normalized, strings.ToLower(kw)) {
				return t.Answer, true
			}
		}
	}

	return "", false
}
