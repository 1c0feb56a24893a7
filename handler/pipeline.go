// drive one story through resolution, creation and attachment upload //
package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OXOS/book-order-pivgeon/email"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
	"github.com/OXOS/book-order-pivgeon/tracker"
)

const uncreatedPrefix = "Unfortunately, Book Order could not create new story for you due to following errors:\n\n- "
const uncreatedFallback = "We are sorry, something went wrong and Book Order could not create new story for you."

// SaveStory runs the whole pipeline for one story: resolve the project behind
// the cc address, resolve member names, post the encoded story, then upload
// all attachments. Each stage only starts once the previous one succeeded; the
// first failure ends the run. A story must not be passed in twice.
func SaveStory(client *tracker.Client, story *glb.Story) *glb.Outcome {
	out := &glb.Outcome{}

	// the project is addressed through the cc address' local part
	projectName := strings.SplitN(email.OptionalAddress(story.Cc), "@", 2)[0]
	projectID, err := client.GetProjectID(projectName)
	if err != nil {
		out.Errors = append(out.Errors, diagnostic(err))
		return out
	}
	if projectID == "" {
		out.Errors = append(out.Errors, fmt.Sprintf("no project named '%s'", projectName))
		return out
	}
	story.ProjectID = projectID

	fromAddr, err := email.FromAddress(story.From)
	if err != nil {
		out.Errors = append(out.Errors, err.Error())
		return out
	}
	toAddr := email.OptionalAddress(story.To)
	story.FromName, story.ToName, err = client.GetUserNames(projectID, fromAddr, toAddr)
	if err != nil {
		out.Errors = append(out.Errors, diagnostic(err))
		return out
	}

	payload := tracker.Story{
		Name:        story.Name,
		Type:        story.Type,
		RequestedBy: story.FromName,
		OwnedBy:     story.ToName,
		Labels:      story.Labels,
		Description: story.Body,
	}
	storyID, storyURL, err := client.CreateStory(projectID, payload.XML())
	if err != nil {
		recordCreateFailure(out, err)
		return out
	}
	story.ID = storyID
	lg.Logf("created story %s at %s\n", storyID, storyURL)

	if len(story.Attachments) > 0 {
		uploadAttachments(client, story, out)
	}

	out.Created = true
	out.StoryURL = storyURL
	return out
}

// recordCreateFailure sorts a story creation failure into the outcome:
// 422 surfaces the tracker's own complaint, 5xx a generic server error
// message, other statuses a generic fallback. Transport and parse failures
// only produce diagnostics, never a user message.
func recordCreateFailure(out *glb.Outcome, err error) {
	var statusErr *tracker.StatusError
	var parseErr *tracker.ParseError
	switch {
	case errors.As(err, &statusErr):
		switch {
		case statusErr.StatusCode == 422:
			out.Uncreated = uncreatedPrefix + statusErr.Message()
		case statusErr.StatusCode >= 500 && statusErr.StatusCode <= 599:
			out.Uncreated = uncreatedPrefix + "Pivotal Tracker server error."
		default:
			out.Uncreated = uncreatedFallback
		}
		out.Errors = append(out.Errors, fmt.Sprintf("Response status: %d\n\n%s", statusErr.StatusCode, statusErr.Body))
	case errors.As(err, &parseErr):
		lg.Logf("PT Response Body: %s", parseErr.Body)
		out.Errors = append(out.Errors, parseErr.Reason+"\n\n"+parseErr.Body)
	default:
		out.Errors = append(out.Errors, err.Error())
	}
}

// diagnostic prefers the raw response body over the error text when there is one.
func diagnostic(err error) string {
	var listingErr *tracker.ListingError
	if errors.As(err, &listingErr) {
		return listingErr.Body
	}
	return err.Error()
}
