package auth

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/grammar"
)

// IsToken reports whether s is a valid RFC 7230 token.
func IsToken(s string) bool { return grammar.IsToken(s) }

// IsScheme reports whether s is a valid auth scheme.
func IsScheme(s string) bool { return grammar.IsToken(s) }

// IsToken68 reports whether s is a valid RFC 7235 token68.
func IsToken68(s string) bool { return grammar.IsToken68(s) }

// Format validates hdr and renders it.
// It returns an error wrapping [ErrInvalidInput] if hdr cannot be serialized.
func Format(hdr *Header, opts *RenderOptions) (string, error) {
	if err := hdr.Validate(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return hdr.Render(opts), nil
}

// FormatParams formats a value of the given scheme with auth-params.
// Without params only the scheme is written.
//
//	FormatParams("Digest", Param{"realm", "example.com"}, Param{"qop", "auth"})
//	// Digest realm="example.com",qop=auth
func FormatParams(scheme string, params ...Param) (string, error) {
	hdr := &Header{Scheme: scheme}
	if len(params) > 0 {
		hdr.Credentials = Params(params)
	}
	return errtrace.Wrap2(Format(hdr, nil))
}

// FormatToken68 formats a value of the given scheme with token68 credentials.
// An empty token produces the scheme only.
func FormatToken68(scheme, token string) (string, error) {
	hdr := &Header{Scheme: scheme}
	if token != "" {
		hdr.Credentials = Token68(token)
	}
	return errtrace.Wrap2(Format(hdr, nil))
}
