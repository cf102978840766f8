package cpc

import "regexp"

// Version is the library version.
const Version = "0.1.0"

// releasePattern matches the six-digit release token the CPC authority
// embeds in its bulk archive filenames (e.g. CPCTitleList202505.zip).
var releasePattern = regexp.MustCompile(`\d{6}`)

// ReleaseToken extracts the six-digit release token from an archive
// filename or URL. Returns the empty string if none is present.
func ReleaseToken(name string) string {
	return releasePattern.FindString(name)
}

// ValidRelease reports whether s is a well-formed six-digit release token.
func ValidRelease(s string) bool {
	return len(s) == 6 && releasePattern.FindString(s) == s
}
