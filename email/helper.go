// email helper structs/functions //
package email

import (
	"fmt"
	"net/mail"
	"strings"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
)

func FormatAddr(address *mail.Address) string {
	return fmt.Sprintf("%s <%s>", address.Name, address.Address)
}

func getQuotedTextBody(email *glb.Email) string {
	out := email.Date.Format("2 January 2006 15:04:05 ") + email.From.Address + "\n\n"
	for _, line := range strings.Split(email.TextBody, "\n") {
		out += "> " + line + "\n"
	}
	return out
}

func GetEmailStatsStr(email *glb.Email) string {
	// time zone used in the email
	tz, _ := email.Date.Local().Zone()
	outStr := fmt.Sprintf("At: %s (%s)\n", email.Date.Format("02.01.2006 15:04:05"), tz)
	outStr += fmt.Sprintf("From: %s\n", email.RawFrom)
	outStr += fmt.Sprintf("To: %s\n", email.RawTo)
	if email.RawCc != "" {
		outStr += fmt.Sprintf("Cc: %s\n", email.RawCc)
	}
	outStr += fmt.Sprintf("Subject: %s\n", email.Subject)
	outStr += fmt.Sprintf("Spam Score: %f\n", email.SpamScore)
	return outStr
}
