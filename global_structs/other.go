// other structs //
package global_structs

import (
	"net/mail"
	"time"
)

type File struct {
	Name  string
	Bytes []byte
}

// FileRef points at an attachment staged in the dump dir.
// The bytes get read back right before the upload.
type FileRef struct {
	Name string
	Path string
}

type Email struct {
	Date time.Time
	// parsed from address, used for reply mails
	From *mail.Address
	// raw header values as handed over by sendgrid
	RawFrom string
	RawTo   string
	RawCc   string

	Subject     string
	SpamScore   float64
	TextBody    string
	Files       []File
	IsAutoReply bool
}

// Story holds everything one email turns into on its way to the tracker.
// A Story goes through handler.SaveStory exactly once; ID and ProjectID are
// blank until the corresponding pipeline stage fills them in.
type Story struct {
	ID        string
	ProjectID string

	From     string
	FromName string
	To       string
	ToName   string
	Cc       string

	Subject string
	Name    string
	Body    string
	Type    string
	Labels  []string

	Attachments []FileRef
}

// Outcome is the result of one pipeline run.
type Outcome struct {
	Created  bool
	StoryURL string
	// user-facing explanation when the tracker rejected the story
	Uncreated string
	// diagnostics: raw response bodies, transport errors, per-attachment failures
	Errors []string
}
