package email_loader

import (
	"path/filepath"
	"testing"

	db "github.com/OXOS/book-order-pivgeon/db"
	glb "github.com/OXOS/book-order-pivgeon/global_structs"
)

// A dump-only instance boots with unhandled mails in the database and no
// tracker client; replay has to leave them alone instead of trying to
// handle them.
func TestLoadUnhandledDumpsDumpOnlyMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "test.sqlite"))
	idb := db.GetDb()
	defer idb.Close()

	if err := db.UpdateEmailState(idb, "email_1.dump", false); err != nil {
		t.Fatal(err)
	}

	cfg := &glb.Config{
		DumpRequests:  true,
		ParseRequests: false,
		DumpDir:       dir,
	}
	LoadUnhandledDumps(cfg, nil, idb)

	mails, err := db.GetUnhandledMails(idb)
	if err != nil {
		t.Fatal(err)
	}
	if len(mails) != 1 || mails[0] != "email_1.dump" {
		t.Errorf("dump should have stayed unhandled, got %v", mails)
	}
}
