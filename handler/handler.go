// central high level instructions, what to do with incoming mail //
// this code shall be as easily changeable as possible //
package handler

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/OXOS/book-order-pivgeon/email"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
	"github.com/OXOS/book-order-pivgeon/tracker"
)

// HandleEmail parses one dumped email and, when it passes the gates, turns it
// into a tracker story. The outcome is nil when the email got ignored.
func HandleEmail(cfg *glb.Config, client *tracker.Client, emailBody []byte) (*glb.Outcome, error) {
	em, err := email.GetParsedEmail(emailBody)
	if err != nil {
		return nil, err
	}
	lg.Logf(email.GetEmailStatsStr(em))

	if cfg.DebugParseOnly {
		// this is a debug flag so we can savely print 'untrusted' input to stdout
		// this flag is never to be used in production
		jsonString, err := json.MarshalIndent(em, "", "  ")
		if err != nil {
			return nil, err
		}
		log.Printf("%s\n\n\n\n", jsonString)
		return nil, nil
	}

	if cfg.SendEmails && em.From.Address == cfg.ReplyEmail {
		lg.Logf("email is from our own reply address")
		lg.Logf("aborting to prevent endless loop")
		return nil, nil
	}

	if whitelisted(cfg, em.From.Address) {
		lg.Logf("sender address is whitelisted, ignore spam score and auto reply status")
	} else {
		lg.Logf("sender address is not whitelisted")

		if em.SpamScore >= cfg.MaxSpamScore {
			lg.Logf("spam score is too high")
			lg.Logf("ignore")
			return nil, nil
		}
		if em.IsAutoReply {
			lg.Logf("email is an auto reply, auto replies don't create stories")
			lg.Logf("ignore")
			return nil, nil
		}
	}

	if email.OptionalAddress(em.RawCc) == "" {
		lg.Logf("no cc address, can't tell which project this email is meant for")
		email.SendNoProjectAddressEmail(cfg, em)
		return nil, nil
	}

	story, err := NewStoryFromEmail(cfg, em)
	if err != nil {
		return nil, err
	}

	out := SaveStory(client, story)
	for _, diag := range out.Errors {
		lg.LogeNoMail(errors.New(diag))
	}

	if out.Created {
		lg.Logf("story saved: %s\n", out.StoryURL)
		if err := email.SendStoryCreatedEmail(cfg, em, out.StoryURL); err != nil {
			lg.LogeNoMail(err)
		}
	} else if out.Uncreated != "" {
		if err := email.SendUncreatedEmail(cfg, em, out.Uncreated); err != nil {
			lg.LogeNoMail(err)
		}
	}
	return out, nil
}
