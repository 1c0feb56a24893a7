package config

import (
	"testing"
	"time"
)

func TestGetTimestamp(t *testing.T) {
	tests := []struct {
		file string
		want int64
	}{
		{file: "email_1700000000000000.dump", want: 1700000000000000},
		{file: "log_1700000000000001.log", want: 1700000000000001},
		{file: "attachment_1700000000000002_0_crash.log", want: 1700000000000002},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			got := getTimestamp(tc.file)
			want := time.UnixMicro(tc.want)
			if !got.Equal(want) {
				t.Errorf("getTimestamp(%q) = %v, want %v", tc.file, got, want)
			}
		})
	}
}

func TestGetTimestampGarbage(t *testing.T) {
	// unparseable names shouldn't look old, otherwise maintenance would delete them
	got := getTimestamp("README.md")
	if time.Since(got) > time.Minute {
		t.Errorf("garbage file name mapped to old timestamp %v", got)
	}
}
