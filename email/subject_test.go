package email

import (
	"reflect"
	"testing"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{subject: "Bug: login fails", want: "bug"},
		{subject: "BUG in checkout", want: "bug"},
		{subject: "Weird debugging behavior", want: "bug"},
		{subject: "Add dark mode", want: "feature"},
		{subject: "", want: "feature"},
	}
	for _, tc := range tests {
		t.Run(tc.subject, func(t *testing.T) {
			got := ClassifyType(tc.subject)
			if got != tc.want {
				t.Errorf("ClassifyType(%q) = %q, want %q", tc.subject, got, tc.want)
			}
		})
	}
}

func TestExtractLabels(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		wantLabels  []string
		wantSubject string
	}{
		{
			name:        "single group with two labels",
			subject:     "[ui, urgent] Crash on load",
			wantLabels:  []string{"ui", "urgent", "new"},
			wantSubject: "Crash on load",
		},
		{
			name:        "no brackets",
			subject:     "  Crash on load ",
			wantLabels:  []string{"new"},
			wantSubject: "Crash on load",
		},
		{
			name:        "multiple groups in order",
			subject:     "[a] fix it [b, c]",
			wantLabels:  []string{"a", "b", "c", "new"},
			wantSubject: "fix it",
		},
		{
			name:        "new never gets deduplicated",
			subject:     "[new] fresh thing",
			wantLabels:  []string{"new", "new"},
			wantSubject: "fresh thing",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			labels, cleaned := ExtractLabels(tc.subject)
			if !reflect.DeepEqual(labels, tc.wantLabels) {
				t.Errorf("labels = %v, want %v", labels, tc.wantLabels)
			}
			if cleaned != tc.wantSubject {
				t.Errorf("cleaned subject = %q, want %q", cleaned, tc.wantSubject)
			}
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{subject: "RE: Fwd: Bug report ", want: "Bug report"},
		{subject: "fw: answer me", want: "answer me"},
		{subject: "nothing to strip", want: "nothing to strip"},
		{subject: "middle RE: token", want: "middle  token"},
	}
	for _, tc := range tests {
		t.Run(tc.subject, func(t *testing.T) {
			got := DeriveName(tc.subject)
			if got != tc.want {
				t.Errorf("DeriveName(%q) = %q, want %q", tc.subject, got, tc.want)
			}
		})
	}
}
