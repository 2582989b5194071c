package auth

import (
	"context"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/constraints"
	"github.com/ghettovoice/httpauth/internal/grammar"
	"github.com/ghettovoice/httpauth/internal/log"
)

// Parser parses authentication header values.
// The zero value is a strict RFC 7235 parser. A Parser is safe for concurrent use.
type Parser struct {
	// Legacy accepts whitespace separated auth-params and '/' or ';' in unquoted values.
	Legacy bool
	// Log receives a debug record for every rejected value. Nil disables logging.
	Log *slog.Logger
}

func (p *Parser) legacy() bool { return p != nil && p.Legacy }

func (p *Parser) log() *slog.Logger {
	if p == nil || p.Log == nil {
		return log.Noop
	}
	return p.Log
}

var defParser Parser

// Parse parses a header value with the strict parser.
// See [Parser.Parse].
func Parse[T constraints.Byteseq](s T) (*Header, error) {
	return errtrace.Wrap2(defParser.Parse(string(s)))
}

// Parse parses a single header value.
// On failure it returns a [*ParseError].
func (p *Parser) Parse(s string) (*Header, error) {
	hdr, err := p.parse(s)
	if err != nil {
		if l := p.log(); l.Enabled(context.Background(), slog.LevelDebug) {
			l.LogAttrs(context.Background(), slog.LevelDebug, "failed to parse auth header",
				slog.Any("value", log.StringValue(s)),
				slog.Bool("legacy", p.legacy()),
				slog.Any("error", err),
			)
		}
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

func (p *Parser) parse(s string) (*Header, error) {
	sc := scanner{src: s}

	scheme, err := sc.token(grammar.IsTokenChar)
	if err != nil {
		return nil, sc.fail(ErrInvalidScheme, err)
	}
	hdr := &Header{Scheme: scheme}
	if sc.eof() {
		return hdr, nil
	}
	if sc.skipSP() == 0 {
		return nil, sc.fail(ErrInvalidScheme, errExpectedSpace)
	}
	if sc.eof() {
		return hdr, nil
	}

	if rest := s[sc.pos:]; grammar.IsToken68(rest) {
		hdr.Credentials = Token68(rest)
		return hdr, nil
	}

	// a leading comma is an empty list element
	if sc.peek() == ',' {
		sc.pos++
		sc.skipWS()
	}

	isValueChar := grammar.IsTokenChar
	if p.legacy() {
		isValueChar = grammar.IsLegacyValueChar
	}

	var params Params
	for !sc.eof() {
		name, err := sc.token(grammar.IsTokenChar)
		if err != nil {
			return nil, sc.fail(ErrInvalidParamName, err)
		}
		sc.skipWS()
		if sc.peek() != '=' {
			return nil, sc.fail(ErrUnexpectedCharacter, errExpectedEquals)
		}
		sc.pos++
		sc.skipWS()

		var val string
		if sc.peek() == '"' {
			val, err = sc.quotedString()
		} else {
			val, err = sc.token(isValueChar)
		}
		if err != nil {
			return nil, sc.fail(ErrInvalidParamValue, err)
		}
		params = append(params, Param{Name: name, Value: val})

		ws := sc.skipWS()
		if sc.eof() {
			break
		}
		if sc.peek() != ',' {
			if p.legacy() && ws > 0 {
				continue
			}
			break
		}
		sc.pos++
		sc.skipWS()
	}
	if !sc.eof() {
		return nil, sc.fail(ErrMalformedValue, nil)
	}

	if len(params) > 0 {
		hdr.Credentials = params
	}
	return hdr, nil
}

// scanner is a cursor over a header value.
type scanner struct {
	src string
	pos int
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.src) }

// peek returns the current byte or 0 at the end of input.
func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

// skipSP skips spaces and returns the number of skipped bytes.
func (sc *scanner) skipSP() int {
	start := sc.pos
	for sc.pos < len(sc.src) && sc.src[sc.pos] == ' ' {
		sc.pos++
	}
	return sc.pos - start
}

// skipWS skips spaces and tabs and returns the number of skipped bytes.
func (sc *scanner) skipWS() int {
	start := sc.pos
	for sc.pos < len(sc.src) && grammar.IsWS(sc.src[sc.pos]) {
		sc.pos++
	}
	return sc.pos - start
}

// token consumes a non-empty run of bytes accepted by isChar.
func (sc *scanner) token(isChar func(byte) bool) (string, error) {
	if sc.eof() {
		return "", ErrUnexpectedEndOfString
	}
	start := sc.pos
	for sc.pos < len(sc.src) && isChar(sc.src[sc.pos]) {
		sc.pos++
	}
	if sc.pos == start {
		return "", ErrInvalidToken
	}
	return sc.src[start:sc.pos], nil
}

// quotedString consumes a quoted-string starting at the opening quote and returns its unescaped content.
// On failure pos points to the offending byte.
func (sc *scanner) quotedString() (string, error) {
	sc.pos++
	start := sc.pos
	var (
		sb      strings.Builder
		escaped bool
	)
	for sc.pos < len(sc.src) {
		switch c := sc.src[sc.pos]; {
		case c == '"':
			v := sc.src[start:sc.pos]
			if escaped {
				v = sb.String()
			}
			sc.pos++
			return v, nil
		case c == '\\':
			if sc.pos+1 >= len(sc.src) {
				sc.pos++
				return "", ErrUnexpectedEndOfString
			}
			if !grammar.IsQuotedPairChar(sc.src[sc.pos+1]) {
				sc.pos++
				return "", ErrInvalidCharacterInQuotedString
			}
			if !escaped {
				escaped = true
				sb.Grow(len(sc.src) - start)
				sb.WriteString(sc.src[start:sc.pos])
			}
			sb.WriteByte(sc.src[sc.pos+1])
			sc.pos += 2
		case grammar.IsQuotedTextChar(c):
			if escaped {
				sb.WriteByte(c)
			}
			sc.pos++
		default:
			return "", ErrInvalidCharacterInQuotedString
		}
	}
	return "", ErrUnexpectedEndOfString
}

func (sc *scanner) fail(kind Error, cause error) *ParseError {
	return &ParseError{Kind: kind, Pos: sc.pos, Input: sc.src, Err: cause}
}
