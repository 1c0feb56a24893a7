// low level pivotal tracker interaction to put info into the tracker //
package tracker

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	lg "github.com/OXOS/book-order-pivgeon/logging"
)

var storyIDRe = regexp.MustCompile(`<id[^>]*>(\d+)</id>`)
var storyURLRe = regexp.MustCompile(`<url>([^<]+)</url>`)
var forbiddenFileNameChars = regexp.MustCompile(`(\\")|[\\/%:$?*]`)

// CreateStory posts the encoded story and returns the new story's id and url.
// A non-200 answer comes back as *StatusError, a 200 answer without the id and
// url markers as *ParseError.
func (c *Client) CreateStory(projectID string, storyXML string) (string, string, error) {
	lg.Logf("creating story in project %s\n", projectID)
	path := fmt.Sprintf("%s/services/v3/projects/%s/stories", c.BaseURL, projectID)
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(storyXML))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("X-TrackerToken", c.Token)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Content-Length", strconv.Itoa(len(storyXML)))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	body := string(bodyBytes)

	if resp.StatusCode != http.StatusOK {
		return "", "", &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	idMatch := storyIDRe.FindStringSubmatch(body)
	urlMatch := storyURLRe.FindStringSubmatch(body)
	if idMatch == nil || urlMatch == nil {
		return "", "", &ParseError{Reason: "story creation response misses id or url", Body: body}
	}
	return idMatch[1], urlMatch[1], nil
}

// UploadAttachment posts one attachment payload to a created story.
func (c *Client) UploadAttachment(projectID string, storyID string, fileName string, data []byte) error {
	fileName = forbiddenFileNameChars.ReplaceAllString(fileName, "")
	lg.Logf("uploading attachment %s to story %s\n", fileName, storyID)

	b := new(bytes.Buffer)
	writer := multipart.NewWriter(b)
	fw, err := writer.CreateFormFile("Filedata", fileName)
	if err != nil {
		return err
	}
	if _, err = fw.Write(data); err != nil {
		return err
	}
	writer.Close()

	path := fmt.Sprintf("%s/services/v3/projects/%s/stories/%s/attachments", c.BaseURL, projectID, storyID)
	req, err := http.NewRequest(http.MethodPost, path, b)
	if err != nil {
		return err
	}
	req.Header.Set("X-TrackerToken", c.Token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
