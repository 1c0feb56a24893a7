// entry point //
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	config "github.com/OXOS/book-order-pivgeon/config"
	db "github.com/OXOS/book-order-pivgeon/db"
	"github.com/OXOS/book-order-pivgeon/email_loader"
	lg "github.com/OXOS/book-order-pivgeon/logging"
	"github.com/OXOS/book-order-pivgeon/tracker"
)

func main() {
	fmt.Print(`
  ====================
   ==              ==
   ==  BOOK ORDER  ==
   ==   pivgeon    ==
   ==              ==
  ====================

**********************************
*  ===========                   *
*  book_order                    *
*  ===========                   *
*                                *
*  email -> pivotal tracker      *
*  story gateway                 *
**********************************

`)
	// ignore sighup until system has booted
	signal.Ignore(syscall.SIGHUP)
	lg.SetupLogger()
	defer lg.CloseLogger()

	cfg := config.GetCfg()
	lg.RotateLog(cfg)
	lg.Loge(cfg, errors.New("book_order booting up"))

	idb := db.GetDb()
	defer idb.Close()

	if cfg.PrintLicenses {
		printLicenses()
	}

	var client *tracker.Client
	if cfg.Tracker != nil {
		client = tracker.NewClient(cfg.Tracker.URL, cfg.Tracker.Token)
	}

	// immediately parsing requests gets performed in startDumper if required
	if cfg.DumpRequests {
		email_loader.LoadUnhandledDumps(cfg, client, idb)
		email_loader.StartEndlessRunner(cfg, client, idb)
		os.Exit(0)
	}
	if cfg.ParseRequests {
		email_loader.LoadAllRequestDumps(cfg, client)
		os.Exit(0)
	}
}
