// everything required to be done regularly -> started with docker_cron //
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	glb "github.com/OXOS/book-order-pivgeon/global_structs"
	lg "github.com/OXOS/book-order-pivgeon/logging"
)

func getTimestamp(fileName string) time.Time {
	fileName = strings.ReplaceAll(fileName, "email_", "")
	fileName = strings.ReplaceAll(fileName, "log_", "")
	fileName = strings.ReplaceAll(fileName, ".dump", "")
	fileName = strings.ReplaceAll(fileName, ".log", "")
	if strings.HasPrefix(fileName, "attachment_") {
		// attachment_<timestamp>_<idx>_<name>
		parts := strings.SplitN(fileName, "_", 3)
		if len(parts) >= 2 {
			fileName = parts[1]
		}
	}
	timestampInt, err := strconv.Atoi(fileName)
	if err != nil {
		lg.Logf("failed to get timestamp of %s\n", fileName)
		return time.Now()
	}
	return time.UnixMicro(int64(timestampInt))
}

// complying with privacy laws
func deleteOldEmails(cfg *glb.Config) {
	if cfg.EmailKeepDays == 0 {
		lg.Logf("don't delete any emails, as defined in email_keep_days config")
		return
	}
	timeCutOff := time.Now().AddDate(0, 0, -cfg.EmailKeepDays)

	files, err := os.ReadDir(cfg.DumpDir)
	if err != nil {
		log.Fatal(err)
	}
	for _, file := range files {
		if getTimestamp(file.Name()).Before(timeCutOff) {
			path := cfg.DumpDir + "/" + file.Name()
			lg.Logf("deleting %s\n", path)
			err := os.Remove(path)
			if err != nil {
				log.Fatal(err)
			}
		}
	}
	lg.Logf("deletion done")
}

func Maintenance(cfg *glb.Config) {
	lg.Logf("performing maintenance")
	deleteOldEmails(cfg)
	lg.RotateLog(cfg)
	lg.Logf("maintenance completed")
}
