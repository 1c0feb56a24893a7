// derive story fields from the subject line //
package email

import (
	"regexp"
	"strings"
)

const DefaultStoryType = "feature"

// every story gets this label, even when the subject already carries it
var alwaysAddLabels = []string{"new"}

var bugRe = regexp.MustCompile(`(?i)bug`)
var bracketGroupRe = regexp.MustCompile(`\[[^\]]+\]`)
var replyPrefixRe = regexp.MustCompile(`(?i)RE:|FWD:|FW:`)
var bracketCharReplacer = strings.NewReplacer("[", "", "]", "")

// ClassifyType returns "bug" when the subject mentions one, "feature" otherwise.
func ClassifyType(subject string) string {
	if bugRe.MatchString(subject) {
		return "bug"
	}
	return DefaultStoryType
}

// ExtractLabels collects the comma separated tokens of every [..] group in the
// subject, appends the always-present "new" label and returns the labels
// together with the subject with all groups stripped and trimmed.
// Labels never get deduplicated.
func ExtractLabels(subject string) ([]string, string) {
	var labels []string
	for _, group := range bracketGroupRe.FindAllString(subject, -1) {
		inner := bracketCharReplacer.Replace(group)
		for _, token := range strings.Split(inner, ",") {
			labels = append(labels, strings.TrimSpace(token))
		}
	}
	labels = append(labels, alwaysAddLabels...)
	cleaned := strings.TrimSpace(bracketGroupRe.ReplaceAllString(subject, ""))
	return labels, cleaned
}

// DeriveName strips reply and forward prefixes wherever they occur and trims.
func DeriveName(subject string) string {
	return strings.TrimSpace(replyPrefixRe.ReplaceAllString(subject, ""))
}
