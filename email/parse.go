// turn raw email from sendgrid into parsed Email //
package email

import (
	"bytes"
	"encoding/json"
	"math"
	"mime"
	"strconv"
	"strings"
	"time"

	"net/http"
	"net/mail"

	"github.com/h2non/filetype"
	"github.com/jhillyerd/enmime/v2"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func isAutoReply(env *enmime.Envelope) bool {
	autoSubmitted := env.GetHeader("Auto-Submitted")
	if autoSubmitted != "" && autoSubmitted != "no" {
		return true
	}
	if env.GetHeader("X-Autoreply") != "" {
		return true
	}
	if env.GetHeader("X-Autorespond") != "" {
		return true
	}
	if env.GetHeader("Precedence") == "auto_reply" {
		return true
	}
	return false
}

func getSendgridFields(body []byte) (map[string][]string, error) {
	fakeReq, err := http.NewRequest(http.MethodPost, "", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	fakeReq.Header.Set("Content-Type", "multipart/form-data; boundary=xYzZY")
	fakeReq.Header.Set("User-Agent", "Twilio-SendGrid")

	err = fakeReq.ParseMultipartForm(1000000000)
	if err != nil {
		return nil, err
	}

	return fakeReq.MultipartForm.Value, nil
}

// cc and spam_score aren't guaranteed to be present
func getField(fields map[string][]string, name string) string {
	values := fields[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// constructFilename interprets the mime part as an (inline) attachment and returns its filename
// If no filename is given it guesses a sensible filename for it based on the filetype.
func constructFilename(part *enmime.Part) string {
	if strings.TrimSpace(part.FileName) != "" {
		return part.FileName
	}

	filenameWOExtension := "unnamed_file"
	if strings.TrimSpace(part.ContentID) != "" {
		filenameWOExtension = part.ContentID
	}

	fileExtension := ".unknown"
	match, err := filetype.Match(part.Content)
	if err != nil {
		mimeExtensions, err := mime.ExtensionsByType(part.ContentType)
		if err == nil && len(mimeExtensions) != 0 {
			// just use the first one we find, this is just a fallback anyways
			fileExtension = mimeExtensions[0]
		}
	} else {
		// while the mime detector includes the leading dot the filetype library does not
		fileExtension = "." + match.Extension
	}
	return filenameWOExtension + fileExtension
}

func getFiles(env *enmime.Envelope) []glb.File {
	files := make([]glb.File, len(env.Inlines)+len(env.Attachments)+len(env.OtherParts))

	// get inlines
	for idx, file := range env.Inlines {
		files[idx] = glb.File{Name: constructFilename(file), Bytes: file.Content}
	}

	// get attachments
	for idx, file := range env.Attachments {
		files[len(env.Inlines)+idx] = glb.File{Name: constructFilename(file), Bytes: file.Content}
	}

	// get other parts (mostly multipart/related files, these are for example embedded images in an html mail)
	for idx, file := range env.OtherParts {
		files[len(env.Inlines)+len(env.Attachments)+idx] = glb.File{Name: constructFilename(file), Bytes: file.Content}
	}
	return files
}

func getTextBody(env *enmime.Envelope) string {
	text := env.Text
	if strings.TrimSpace(text) == "" && strings.TrimSpace(env.HTML) != "" {
		converted, err := htmlToPlain(env.HTML)
		if err != nil {
			lg.Logf("Warning: failed to convert html body: %s", err.Error())
		} else {
			text = converted
		}
	}
	return strings.TrimSpace(text[:int(math.Min(float64(len(text)), 32767))])
}

func GetParsedEmail(body []byte) (*glb.Email, error) {
	lg.Logf("parsing email with enmime")
	// sendgrid stuff
	sendgridFields, err := getSendgridFields(body)
	if err != nil {
		lg.Logf("failed to parse sendgrid fields")
		return nil, err
	}

	rawEmail := getField(sendgridFields, "email")
	subject := getField(sendgridFields, "subject")
	rawFrom := getField(sendgridFields, "from")
	rawTo := getField(sendgridFields, "to")
	rawCc := getField(sendgridFields, "cc")

	spamScore := 0.0
	if scoreField := getField(sendgridFields, "spam_score"); scoreField != "" {
		spamScore, err = strconv.ParseFloat(scoreField, 64)
		if err != nil {
			lg.Logf("failed to get spam score")
			return nil, err
		}
	}

	// there is a bug in sendgrid
	// sendgrid doesn't escape commas and the like with " when the address is encoded using b64
	// therefore this call can fail
	headerFrom, err := mail.ParseAddress(rawFrom)
	if err != nil {
		lg.Logf("error to be ignored in sendgrid from field: %s", err.Error())
		// envelope address will be used instead
		headerFrom = &mail.Address{Name: "", Address: ""}
	}

	type Envelope struct {
		To   []string `json:"to"`
		From string   `json:"from"`
	}
	var envelope Envelope
	if envField := getField(sendgridFields, "envelope"); envField != "" {
		if err := json.Unmarshal([]byte(envField), &envelope); err != nil {
			lg.Logf("failed to get sendgrid mail envelope")
			return nil, err
		}
	}
	// use truest from email address -> better against phishing
	if headerFrom.Address == "" && envelope.From != "" {
		envelopeFrom, err := mail.ParseAddress(envelope.From)
		if err == nil {
			headerFrom = envelopeFrom
		}
	}

	env, err := enmime.ReadEnvelope(strings.NewReader(rawEmail))
	// hard parsing error
	if err != nil {
		lg.Logf("failed to get enmime envelope")
		return nil, err
	}
	// soft parsing errors, we can continue with those
	for _, e := range env.Errors {
		lg.Logf("Warning: enmime decoding error: %s", e)
	}

	date, err := env.Date()
	if err != nil {
		lg.Logf("Warning: failed to parse email date: %s", err)
		date = time.Now()
	}

	email := glb.Email{
		Date:        date,
		From:        headerFrom,
		RawFrom:     rawFrom,
		RawTo:       rawTo,
		RawCc:       rawCc,
		Subject:     subject,
		SpamScore:   spamScore,
		TextBody:    getTextBody(env),
		Files:       getFiles(env),
		IsAutoReply: isAutoReply(env),
	}
	return &email, nil
}
