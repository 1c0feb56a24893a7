// low level pivotal tracker interaction //
package tracker

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	lg "github.com/OXOS/book-order-pivgeon/logging"
)

type Client struct {
	// e.g. https://www.pivotaltracker.com, no trailing slash
	BaseURL string
	Token   string

	HTTPClient *http.Client
}

func NewClient(baseURL string, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

// StatusError is a non-200 answer from the tracker, body included for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tracker responded with status %d", e.StatusCode)
}

var trackerErrorRe = regexp.MustCompile(`<error>(.*?)</error>`)

// Message extracts the first <error> element out of a 422 body.
func (e *StatusError) Message() string {
	match := trackerErrorRe.FindStringSubmatch(e.Body)
	if match == nil {
		return ""
	}
	return match[1]
}

// ParseError is a 200 answer whose body doesn't carry the expected markers.
type ParseError struct {
	Reason string
	Body   string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// ListingError is a project or membership listing without the expected list wrapper.
type ListingError struct {
	Body string
}

func (e *ListingError) Error() string {
	return e.Body
}

// getListing fetches one of the tracker's listing endpoints and hands back the raw body.
func (c *Client) getListing(path string, wrapper string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-TrackerToken", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	body := string(bodyBytes)

	if !strings.Contains(body, wrapper) {
		lg.Logf("%s", body)
		return "", &ListingError{Body: body}
	}
	return body, nil
}
