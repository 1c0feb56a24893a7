package email

import (
	"testing"
)

func TestFromAddress(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: `"Jane Doe" <jane@x.com>`, want: "jane@x.com"},
		{header: "Alice <alice@x.com>", want: "alice@x.com"},
		{header: "plain@x.com", wantErr: true},
		{header: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			got, err := FromAddress(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tc.header, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("FromAddress(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestOptionalAddress(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: `"Bob" <bob@x.com>`, want: "bob@x.com"},
		{header: "plain@x.com", want: "plain@x.com"},
		{header: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			got := OptionalAddress(tc.header)
			if got != tc.want {
				t.Errorf("OptionalAddress(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
