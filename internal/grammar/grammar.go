// Package grammar implements the RFC 7230 / RFC 7235 character classes and
// the string predicates built on them.
package grammar

import (
	"strings"

	"github.com/ghettovoice/httpauth/internal/constraints"
)

// IsToken reports whether s is a non-empty RFC 7230 token.
func IsToken[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := range len(s) {
		if !IsTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// IsToken68 reports whether s is an RFC 7235 token68:
// a non-empty run of token68 characters followed by optional "=" padding up to the end.
func IsToken68[T constraints.Byteseq](s T) bool {
	i := 0
	for i < len(s) && IsToken68Char(s[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	for i < len(s) && s[i] == '=' {
		i++
	}
	return i == len(s)
}

// IsQuotable reports whether s can be carried inside a quoted-string,
// i.e. every byte is either qdtext or can be escaped as a quoted-pair.
func IsQuotable[T constraints.Byteseq](s T) bool {
	for i := range len(s) {
		if !IsQuotedPairChar(s[i]) {
			return false
		}
	}
	return true
}

// Quote wraps s in double quotes, escaping '"' and '\' as quoted-pairs.
// Bytes that cannot be carried in a quoted-string are written as is,
// use [IsQuotable] to check s beforehand.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	WriteQuoted(&sb, s)
	return sb.String()
}

// WriteQuoted writes s as a quoted-string to sb.
func WriteQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := range len(s) {
		if c := s[i]; c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
}
