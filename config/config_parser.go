// parse and sanity-check yaml config //
package config

import (
	"log"
	"net/mail"
	"os"

	"gopkg.in/yaml.v2"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func validateTracker(trk *glb.Tracker) {
	if trk == nil {
		log.Fatal("tracker needs to be defined when parse_requests is set")
	}
	if trk.URL == "" {
		log.Fatal("url needs to be defined for the tracker")
	}
	if trk.Token == "" {
		log.Fatal("token needs to be defined for the tracker")
	}
}

func validateConfig(cfg *glb.Config) {
	if (cfg.CriticalMailTo == "") != (cfg.CriticalMailFrom == "") {
		log.Fatal("either both critical_mail_to and critical_mail_from need to be defined or neither")
	}

	if !cfg.DumpRequests && !cfg.ParseRequests {
		log.Fatal("one or both of (dump_requests, parse_requests) need to be set to true in config.yaml")
	}
	if fileInfo, err := os.Stat(cfg.DumpDir); err != nil || !fileInfo.IsDir() {
		log.Fatalf("'%s' specified by dump_dir in the config doesn't point to a directory\n", cfg.DumpDir)
	}

	if cfg.MaxSpamScore <= 0 {
		log.Fatal("spam score needs to be defined and bigger than 0")
	}

	if cfg.DumpRequests {
		if cfg.Port == 0 {
			log.Fatal("port needs to be defined")
		}
		if cfg.Domain == "" {
			log.Fatal("domain needs to be defined")
		}
		// certs get checked by golang http
	}

	// ignore the tracker in debug parse mode
	if cfg.ParseRequests && !cfg.DebugParseOnly {
		validateTracker(cfg.Tracker)
	}

	if cfg.SendEmails {
		if cfg.SendEMailHost == "" {
			log.Fatal("send_email_host needs to be defined")
		}
		if cfg.SendEMailPort == 0 {
			log.Fatal("send_email_port needs to be defined")
		}
		if cfg.ReplyEmail == "" {
			log.Fatal("reply_email needs to be defined when send_emails is set")
		}
		cfg.ReplyAddress = &mail.Address{Name: cfg.ReplyEmailName, Address: cfg.ReplyEmail}
	}
}

func GetCfg() *glb.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatalf("Couldn't read config file '%s'\n", configPath)
	}
	var cfg glb.Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatal("Failed to parse yaml config file.")
	}
	validateConfig(&cfg)
	lg.Logf("loaded and validated config")

	return &cfg
}
