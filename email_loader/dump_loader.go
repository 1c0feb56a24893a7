// expose http endpoint for sendgrid, load email dumps, receive signals from docker_cron //
package email_loader

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/OXOS/book-order-pivgeon/handler"
	"github.com/OXOS/book-order-pivgeon/tracker"

	db "github.com/OXOS/book-order-pivgeon/db"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func LoadAllRequestDumps(cfg *glb.Config, client *tracker.Client) {
	lg.Logf("Loading Email Dumps with send_emails=%t\n\n", cfg.SendEmails)
	files, err := os.ReadDir(cfg.DumpDir)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatalf("")
	}
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".dump") {
			continue
		}

		lg.Logf("\n\n\n")
		path := filepath.Join(cfg.DumpDir, file.Name())

		lg.Logf("reading email dumped at '%s'\n", path)
		body, err := os.ReadFile(path)
		if err != nil {
			lg.LogeNoMail(err)
			log.Fatalf("")
		}
		if _, err := handler.HandleEmail(cfg, client, body); err != nil {
			lg.LogeNoMail(err)
			log.Fatalf("")
		}
		lg.Logf("\n\n\n")
	}
}

func LoadUnhandledDumps(cfg *glb.Config, client *tracker.Client, idb *sql.DB) {
	// without parse_requests there is no tracker client, the parsing instance
	// picks the unhandled dumps up instead
	if !cfg.ParseRequests {
		lg.Logf("dump only mode, leaving unhandled dumps alone")
		return
	}
	lg.Logf("Loading unhandled Dumps with send_emails=%t\n\n", cfg.SendEmails)
	mails, err := db.GetUnhandledMails(idb)
	if err != nil {
		lg.Loge(cfg, err)
	}
	for _, dumpFile := range mails {
		lg.Logf("\n\n\n")
		path := filepath.Join(cfg.DumpDir, dumpFile)

		lg.Logf("reading email dumped at '%s'\n", path)
		body, err := os.ReadFile(path)
		if err != nil {
			lg.Loge(cfg, err)
		} else {
			if outcome, err := handler.HandleEmail(cfg, client, body); err != nil {
				lg.Loge(cfg, err)
			} else {
				db.UpdateEmailState(idb, dumpFile, true)
				if outcome != nil {
					db.RecordStoryOutcome(idb, dumpFile, outcome)
				}
			}
		}
		lg.Logf("\n\n\n")
	}
	lg.Logf("Finished Loading unhandled Dumps")
}
