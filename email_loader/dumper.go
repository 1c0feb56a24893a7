// expose http endpoint for sendgrid, load email dumps, receive signals from docker_cron //
package email_loader

import (
	"crypto/subtle"
	"database/sql"
	"net/http"
	"net/http/httputil"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/OXOS/book-order-pivgeon/config"
	"github.com/OXOS/book-order-pivgeon/handler"
	"github.com/OXOS/book-order-pivgeon/tracker"

	db "github.com/OXOS/book-order-pivgeon/db"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func getBody(request *http.Request) ([]byte, error) {
	head, err := httputil.DumpRequest(request, false)
	if err != nil {
		return nil, err
	}
	bodyHead, err := httputil.DumpRequest(request, true)
	if err != nil {
		return nil, err
	}
	return bodyHead[len(head):], nil
}

func inboundHandler(response http.ResponseWriter, request *http.Request, cfg *glb.Config, client *tracker.Client, idb *sql.DB) {
	token := request.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.SendgridToken)) != 1 {
		response.WriteHeader(http.StatusBadRequest)
		return
	}

	// dump body
	body, err := getBody(request)
	if err != nil {
		lg.Loge(cfg, err)
		response.WriteHeader(http.StatusBadRequest)
		return
	}

	// write file
	timestamp := strconv.Itoa(int(time.Now().UnixMicro()))
	dumpFile := "email_" + timestamp + ".dump"
	dumpFullPath := filepath.Join(cfg.DumpDir, dumpFile)
	if err := os.WriteFile(dumpFullPath, body, 0644); err != nil {
		lg.Loge(cfg, err)
		response.WriteHeader(http.StatusBadRequest)
		return
	}
	db.UpdateEmailState(idb, dumpFile, false)
	lg.Logf("received e-mail, dumped at '%s'\n", dumpFullPath)
	response.WriteHeader(http.StatusOK)

	// immediately parse request?
	if cfg.ParseRequests {
		lg.Logf("\n\n\n")
		if outcome, err := handler.HandleEmail(cfg, client, body); err != nil {
			lg.Loge(cfg, err)
		} else {
			db.UpdateEmailState(idb, dumpFile, true)
			if outcome != nil {
				db.RecordStoryOutcome(idb, dumpFile, outcome)
			}
		}
		lg.Logf("\n\n\n")
	}
}

func StartEndlessRunner(cfg *glb.Config, client *tracker.Client, idb *sql.DB) {
	// perform maintenance when receiving SIGHUP
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	var maintenance_mutex sync.Mutex

	go startDumper(cfg, &maintenance_mutex, client, idb)
	for {
		<-sighup
		lg.Logf("received SIGHUP, acquiring mutex lock")
		maintenance_mutex.Lock()
		lg.Logf("lock engaged")

		config.Maintenance(cfg)

		lg.Logf("unlocking mutex")
		maintenance_mutex.Unlock()
		lg.Logf("")
	}
}

func startDumper(cfg *glb.Config, maintenance_mutex *sync.Mutex, client *tracker.Client, idb *sql.DB) {
	router := http.NewServeMux()
	router.HandleFunc("/inbound", func(w http.ResponseWriter, r *http.Request) {
		maintenance_mutex.Lock()
		inboundHandler(w, r, cfg, client, idb)
		maintenance_mutex.Unlock()
	})
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: router,
	}

	lg.Logf("Running dumping server on https://%s:%d using cert file '%s' and key file '%s' with parse_requests=%t and send_emails=%t\n\n",
		cfg.Domain, cfg.Port, cfg.SSLCert, cfg.SSLKey, cfg.ParseRequests, cfg.SendEmails)
	if err := srv.ListenAndServeTLS(cfg.SSLCert, cfg.SSLKey); err != nil {
		lg.Loge(cfg, err)
	}
}
