package tracker

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

const projectsListing = `<?xml version="1.0" encoding="UTF-8"?>
<projects type="array">
  <project>
    <id>42</id>
    <name>Acme</name>
  </project>
  <project>
    <id>7</id>
    <name>Skunkworks</name>
  </project>
</projects>`

const membershipsListing = `<?xml version="1.0" encoding="UTF-8"?>
<memberships type="array">
  <membership>
    <email>alice@x.com</email>
    <name>Alice</name>
  </membership>
  <membership>
    <email>Bob@X.com</email>
    <name>Bob</name>
  </membership>
</memberships>`

func newListingServer(t *testing.T, path string, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-TrackerToken") != "tok" {
			t.Errorf("missing tracker token header")
		}
		w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetProjectID(t *testing.T) {
	server := newListingServer(t, "/services/v3/projects/", projectsListing)
	client := NewClient(server.URL, "tok")

	tests := []struct {
		name string
		want string
	}{
		{name: "Acme", want: "42"},
		{name: "acme", want: "42"},
		{name: "SKUNKWORKS", want: "7"},
		{name: "missing", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := client.GetProjectID(tc.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("GetProjectID(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestGetProjectIDBadListing(t *testing.T) {
	server := newListingServer(t, "/services/v3/projects/", `<html>login please</html>`)
	client := NewClient(server.URL, "tok")

	_, err := client.GetProjectID("Acme")
	var listingErr *ListingError
	if !errors.As(err, &listingErr) {
		t.Fatalf("expected *ListingError, got %v", err)
	}
	if listingErr.Body != `<html>login please</html>` {
		t.Errorf("listing error body = %q", listingErr.Body)
	}
}

// percent signs in a vendor response must not get interpreted as format verbs
func TestGetProjectIDBadListingLoggedVerbatim(t *testing.T) {
	server := newListingServer(t, "/services/v3/projects/", `<html>100% broken %d</html>`)
	client := NewClient(server.URL, "tok")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	client.GetProjectID("Acme")
	if !strings.Contains(buf.String(), "100% broken %d") {
		t.Errorf("raw body missing from log: %s", buf.String())
	}
	if strings.Contains(buf.String(), "MISSING") {
		t.Errorf("body got mangled as a format string: %s", buf.String())
	}
}

func TestGetUserNames(t *testing.T) {
	server := newListingServer(t, "/services/v3/projects/42/memberships", membershipsListing)
	client := NewClient(server.URL, "tok")

	fromName, toName, err := client.GetUserNames("42", "alice@x.com", "bob@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromName != "Alice" {
		t.Errorf("fromName = %q, want Alice", fromName)
	}
	// membership keys are matched case-insensitively
	if toName != "Bob" {
		t.Errorf("toName = %q, want Bob", toName)
	}
}

func TestGetUserNamesUnknownMember(t *testing.T) {
	server := newListingServer(t, "/services/v3/projects/42/memberships", membershipsListing)
	client := NewClient(server.URL, "tok")

	fromName, toName, err := client.GetUserNames("42", "nobody@x.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromName != "" || toName != "" {
		t.Errorf("unknown members should map to blank names, got %q %q", fromName, toName)
	}
}
