// build a story out of a parsed email -> everything required for handler.go //
package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/OXOS/book-order-pivgeon/email"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

var stagedNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// NewStoryFromEmail derives all story fields from the parsed email and stages
// the attachments in the dump dir.
func NewStoryFromEmail(cfg *glb.Config, em *glb.Email) (*glb.Story, error) {
	story := &glb.Story{
		From:    em.RawFrom,
		To:      em.RawTo,
		Cc:      em.RawCc,
		Subject: em.Subject,
		Body:    em.TextBody,
	}

	story.Type = email.ClassifyType(story.Subject)
	// caller-supplied labels are kept as they are
	if len(story.Labels) == 0 {
		story.Labels, story.Subject = email.ExtractLabels(story.Subject)
	}
	story.Name = email.DeriveName(story.Subject)

	attachments, err := stageAttachments(cfg, em.Files)
	if err != nil {
		return nil, err
	}
	story.Attachments = attachments
	return story, nil
}

// stageAttachments writes the decoded mime parts next to the email dumps so
// the uploader can read them back, and maintenance can expire them by their
// embedded timestamp.
func stageAttachments(cfg *glb.Config, files []glb.File) ([]glb.FileRef, error) {
	refs := make([]glb.FileRef, 0, len(files))
	for idx, file := range files {
		timestamp := strconv.Itoa(int(time.Now().UnixMicro()))
		safeName := stagedNameChars.ReplaceAllString(file.Name, "_")
		stagedName := fmt.Sprintf("attachment_%s_%d_%s", timestamp, idx, safeName)
		path := filepath.Join(cfg.DumpDir, stagedName)
		if err := os.WriteFile(path, file.Bytes, 0644); err != nil {
			return nil, err
		}
		lg.Logf("staged attachment '%s' at '%s'\n", file.Name, path)
		refs = append(refs, glb.FileRef{Name: file.Name, Path: path})
	}
	return refs, nil
}

func whitelisted(cfg *glb.Config, address string) bool {
	for _, whitelistedAddress := range cfg.EmailWhitelist {
		if strings.EqualFold(whitelistedAddress, address) {
			return true
		}
	}
	return false
}
