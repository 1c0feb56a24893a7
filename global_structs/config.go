// single source of truth for config, unchanged except for config loading //
package global_structs

import (
	"net/mail"
)

type Tracker struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type Config struct {
	CriticalMailTo   string `yaml:"critical_mail_to"`
	CriticalMailFrom string `yaml:"critical_mail_from"`

	DumpRequests   bool `yaml:"dump_requests"`
	ParseRequests  bool `yaml:"parse_requests"`
	DebugParseOnly bool `yaml:"debug_parse_only"`
	SendEmails     bool `yaml:"send_emails"`
	PrintLicenses  bool `yaml:"print_licenses"`

	DumpDir       string `yaml:"dump_dir"`
	EmailKeepDays int    `yaml:"email_keep_days"`
	// needs to be bigger than 0
	MaxSpamScore float64 `yaml:"max_spam_score"`

	// only when DumpRequests
	Port          int    `yaml:"port"`
	Domain        string `yaml:"domain"`
	SSLCert       string `yaml:"ssl_cert"`
	SSLKey        string `yaml:"ssl_key"`
	SendgridToken string `yaml:"sendgrid_token"`

	// only when ParseRequests
	Tracker        *Tracker `yaml:"tracker"`
	EmailWhitelist []string `yaml:"email_whitelist"`

	// only when SendEmails
	SendEMailHost  string `yaml:"send_email_host"`
	SendEMailPort  int    `yaml:"send_email_port"`
	ReplyEmail     string `yaml:"reply_email"`
	ReplyEmailName string `yaml:"reply_email_name"`
	// defined later on
	ReplyAddress *mail.Address
}
