// low level pivotal tracker interaction to get info out of the tracker //
package tracker

import (
	"fmt"
	"regexp"
	"strings"

	lg "github.com/OXOS/book-order-pivgeon/logging"
)

var projectPairRe = regexp.MustCompile(`<id>([^<]+)</id>\s*<name>([^<]+)</name>`)
var membershipPairRe = regexp.MustCompile(`<email>([^<]+)</email>\s*<name>([^<]+)</name>`)

// GetProjectID resolves a project display name to its id, ignoring case.
// An unknown name returns "" without an error.
func (c *Client) GetProjectID(name string) (string, error) {
	lg.Logf("getting project id for '%s'\n", name)
	body, err := c.getListing("/services/v3/projects/", "<projects")
	if err != nil {
		return "", err
	}
	id := projectIDsFromXML(body)[strings.ToLower(name)]
	if id == "" {
		lg.Logf("project not found")
	}
	return id, nil
}

func projectIDsFromXML(xml string) map[string]string {
	ids := map[string]string{}
	for _, match := range projectPairRe.FindAllStringSubmatch(xml, -1) {
		ids[strings.ToLower(match[2])] = match[1]
	}
	return ids
}

// GetUserNames resolves the from and to addresses to member display names.
// Unknown members come back as "", the tracker tolerates blank requesters and owners.
func (c *Client) GetUserNames(projectID string, fromEmail string, toEmail string) (string, string, error) {
	lg.Logf("getting member names for %s and %s\n", fromEmail, toEmail)
	path := fmt.Sprintf("/services/v3/projects/%s/memberships", projectID)
	body, err := c.getListing(path, "<memberships")
	if err != nil {
		return "", "", err
	}
	names := userNamesFromXML(body)
	return names[strings.ToLower(fromEmail)], names[strings.ToLower(toEmail)], nil
}

func userNamesFromXML(xml string) map[string]string {
	names := map[string]string{}
	for _, match := range membershipPairRe.FindAllStringSubmatch(xml, -1) {
		names[strings.ToLower(match[1])] = match[2]
	}
	return names
}
