// pull bare addresses out of raw header values //
package email

import (
	"fmt"
	"regexp"
)

var angleAddrRe = regexp.MustCompile(`<([^>]+)>`)

// FromAddress extracts the address out of a from header. The ingestion path
// guarantees a bracketed address, a bare value is a parse failure here.
func FromAddress(header string) (string, error) {
	match := angleAddrRe.FindStringSubmatch(header)
	if match == nil {
		return "", fmt.Errorf("no bracketed address in from header '%s'", header)
	}
	return match[1], nil
}

// OptionalAddress handles to and cc headers: a bracketed address yields its
// contents, a bare value passes through, a missing header yields "".
func OptionalAddress(header string) string {
	if header == "" {
		return ""
	}
	if match := angleAddrRe.FindStringSubmatch(header); match != nil {
		return match[1]
	}
	return header
}
