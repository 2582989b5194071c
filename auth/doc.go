// Package auth parses and formats the values of the HTTP authentication header fields
// defined in RFC 7235: Authorization, Proxy-Authorization, WWW-Authenticate and Proxy-Authenticate.
//
// A header value consists of an auth scheme optionally followed by credentials,
// which are either a single token68 or a list of auth-params:
//
//	Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==
//	Digest realm="example.com", nonce="qwerty", qop=auth
//	Negotiate
//
// [Parse] turns a value into a [*Header], [Header.Render] and [Format] do the reverse.
// Parsing is strict by default, a [Parser] with Legacy enabled also accepts
// whitespace separated auth-params and '/' or ';' in unquoted values, as sent by
// AWS Signature Version 4 and other legacy clients.
//
// Values are treated as octet strings: scanning is byte oriented and bytes in the
// range 0x80-0xFF are accepted inside quoted-strings.
//
//go:generate errtrace -w .
package auth
