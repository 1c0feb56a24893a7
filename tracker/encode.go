// serialize story fields into the tracker's xml creation payload //
package tracker

import (
	"strings"
)

// Story carries the fields of the xml creation payload.
type Story struct {
	Name        string
	Type        string
	RequestedBy string
	OwnedBy     string
	Labels      []string
	Description string
}

// escapeXML escapes &, < and >, nothing else. The ampersand pass has to run
// first, otherwise the entities introduced by the angle bracket passes would
// get escaped a second time.
func escapeXML(str string) string {
	str = strings.ReplaceAll(str, "&", "&amp;")
	str = strings.ReplaceAll(str, "<", "&lt;")
	str = strings.ReplaceAll(str, ">", "&gt;")
	return str
}

func (s *Story) XML() string {
	return "<story><name>" + escapeXML(s.Name) + "</name>" +
		"<story_type>" + escapeXML(s.Type) + "</story_type>" +
		"<requested_by>" + escapeXML(s.RequestedBy) + "</requested_by>" +
		"<owned_by>" + escapeXML(s.OwnedBy) + "</owned_by>" +
		"<labels>" + escapeXML(strings.Join(s.Labels, ", ")) + "</labels>" +
		"<description>" + escapeXML(s.Description) + "</description></story>"
}
