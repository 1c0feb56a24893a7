// send reply emails //
package email

import (
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func sendMail(cfg *glb.Config, from *mail.Address, to *mail.Address, subject string, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from.Address, from.Name)
	m.SetAddressHeader("To", to.Address, to.Name)
	m.SetHeader("Subject", subject)
	m.SetHeader("Auto-Submitted", "auto-generated")

	m.AddAlternative("text/plain", body)

	dialer := gomail.NewPlainDialer(cfg.SendEMailHost, cfg.SendEMailPort, "", "")
	lg.Logf("sending mail at %s from %s: %s\n", FormatAddr(to), FormatAddr(from), subject)
	if err := dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}

func sendReplyEmail(cfg *glb.Config, email *glb.Email, subject string, message string) error {
	body := message + "\n\n" + getQuotedTextBody(email)
	return sendMail(cfg, cfg.ReplyAddress, email.From, subject, body)
}

// SendStoryCreatedEmail tells the sender where their new story lives.
func SendStoryCreatedEmail(cfg *glb.Config, email *glb.Email, storyURL string) error {
	if !cfg.SendEmails {
		lg.Logf("don't send emails when send_emails is disabled")
		return nil
	}
	lg.Logf("sending story created email")

	message := fmt.Sprintf("Book Order created a new story for you:\n\n%s", storyURL)
	subject := fmt.Sprintf("RE: %s", email.Subject)
	return sendReplyEmail(cfg, email, subject, message)
}

// SendUncreatedEmail forwards the tracker's explanation of why no story got created.
func SendUncreatedEmail(cfg *glb.Config, email *glb.Email, userMessage string) error {
	if !cfg.SendEmails {
		lg.Logf("don't send emails when send_emails is disabled")
		return nil
	}
	lg.Logf("sending story uncreated email")

	subject := fmt.Sprintf("RE: %s", email.Subject)
	return sendReplyEmail(cfg, email, subject, userMessage)
}

// SendNoProjectAddressEmail goes out when no cc address names a project.
func SendNoProjectAddressEmail(cfg *glb.Config, email *glb.Email) error {
	if !cfg.SendEmails {
		lg.Logf("don't send emails when send_emails is disabled")
		return nil
	}
	lg.Logf("sending no project address email")

	message := "We are sorry, Book Order could not tell which project your email was meant for.\n" +
		"Put the project's address in Cc and try again."
	subject := fmt.Sprintf("RE: %s", email.Subject)
	return sendReplyEmail(cfg, email, subject, message)
}
