package email

import (
	"testing"
)

func TestHtmlToPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraph with entity",
			in:   `<p>Hello &amp; welcome</p>`,
			want: "Hello & welcome",
		},
		{
			name: "heading and paragraphs",
			in:   `<h2>Title</h2><p>First para</p><p>Second para</p>`,
			want: "## Title\n\nFirst para\n\nSecond para",
		},
		{
			name: "bold italic and inline code",
			in:   `This is <b>bold</b> and <i>italic</i> and <code>inline()</code>`,
			want: "This is **bold** and *italic* and `inline()`",
		},
		{
			name: "link with href different from text",
			in:   `See <a href="https://example.com">project</a> updates.`,
			want: "See project (https://example.com) updates.",
		},
		{
			name: "lists",
			in:   `<ul><li>one</li><li>two</li></ul><ol><li>first</li><li>second</li></ol>`,
			want: "- one\n- two\n\n1. first\n2. second",
		},
		{
			name: "image reduced to alt text",
			in:   `<p>Look: <img src="https://img.example/x.png" alt="logo"></p>`,
			want: "Look: ![logo](https://img.example/x.png)",
		},
		{
			name: "script and style dropped",
			in:   `<style>p{color:red}</style><p>visible</p><script>alert(1)</script>`,
			want: "visible",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := htmlToPlain(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("htmlToPlain mismatch:\n--- got ---\n%q\n--- want ---\n%q\n", got, tc.want)
			}
		})
	}
}
