// Package report receives credential tuples from connection sessions
// and fans them out to the configured sinks (CSV stream, SQLite store,
// Redis channel).  Captured usernames and passwords are attacker
// input: every byte is escaped before it can reach a log parser, a
// terminal, or a query.
package report

import (
	"bytes"
	"fmt"
)

// unsafeChars are printable characters escaped anyway: field and
// record separators plus the classic injection starters.
const unsafeChars = `\<'" ,`

// Sanitize renders raw field bytes as printable ASCII.  Anything
// non-printable, plus the characters in unsafeChars, becomes a \xhh
// escape with lowercase hex digits.  The result never contains an
// unescaped comma, quote, or space.
func Sanitize(field []byte) string {
	var b bytes.Buffer
	for _, c := range field {
		if c < 0x21 || c > 0x7e || bytes.IndexByte([]byte(unsafeChars), c) >= 0 {
			fmt.Fprintf(&b, `\x%02x`, c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Suppressed reports whether a credential pair is a known benign
// client-side artifact rather than an attacker guess.  Busybox-style
// clients send these on their own.
func Suppressed(username, password []byte) bool {
	if string(username) == "shell" && string(password) == "sh" {
		return true
	}
	if string(username) == "enable" && string(password) == "system" {
		return true
	}
	return false
}
