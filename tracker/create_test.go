package tracker

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateStory(t *testing.T) {
	var postedBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/services/v3/projects/42/stories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/xml" {
			t.Errorf("Content-Type = %q, want application/xml", ct)
		}
		body, _ := io.ReadAll(r.Body)
		postedBody = string(body)
		w.Write([]byte(`<story><id type="integer">99</id><url>http://t/99</url></story>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := NewClient(server.URL, "tok")

	payload := Story{Name: "Button broken", Type: "bug", Labels: []string{"new"}}
	id, url, err := client.CreateStory("42", payload.XML())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "99" {
		t.Errorf("id = %q, want 99", id)
	}
	if url != "http://t/99" {
		t.Errorf("url = %q, want http://t/99", url)
	}
	if !strings.Contains(postedBody, "<name>Button broken</name>") {
		t.Errorf("posted body misses story name: %s", postedBody)
	}
}

func TestCreateStoryStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		w.Write([]byte(`<errors><error>Name can't be blank</error></errors>`))
	}))
	defer server.Close()
	client := NewClient(server.URL, "tok")

	_, _, err := client.CreateStory("42", "<story></story>")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != 422 {
		t.Errorf("status = %d, want 422", statusErr.StatusCode)
	}
	if got := statusErr.Message(); got != "Name can't be blank" {
		t.Errorf("message = %q, want the first error element", got)
	}
}

func TestCreateStoryParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`all fine, no xml though`))
	}))
	defer server.Close()
	client := NewClient(server.URL, "tok")

	_, _, err := client.CreateStory("42", "<story></story>")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Body != "all fine, no xml though" {
		t.Errorf("parse error body = %q", parseErr.Body)
	}
}

func TestUploadAttachment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services/v3/projects/42/stories/99/attachments", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		file, header, err := r.FormFile("Filedata")
		if err != nil {
			t.Fatalf("missing Filedata part: %v", err)
		}
		defer file.Close()
		if header.Filename != "crash.log" {
			t.Errorf("filename = %q, want crash.log", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "boom" {
			t.Errorf("payload = %q, want boom", data)
		}
		w.Write([]byte(`ok`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := NewClient(server.URL, "tok")

	if err := client.UploadAttachment("42", "99", "crash.log", []byte("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
