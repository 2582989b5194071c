package auth

import (
	"strconv"

	"github.com/ghettovoice/httpauth/internal/errorutil"
	"github.com/ghettovoice/httpauth/internal/util"
)

// Error represents an auth header error.
// See [errorutil.Error].
type Error = errorutil.Error

// Parse errors. Every parse failure is a [*ParseError] whose Kind is one of these.
const (
	// ErrInvalidInputType is returned when a decoded input is not a string.
	ErrInvalidInputType Error = "invalid input type"
	// ErrInvalidScheme is returned when the value does not start with a token
	// or the token is not followed by a space.
	ErrInvalidScheme Error = "invalid auth scheme"
	// ErrInvalidParamName is returned when an auth-param name is empty.
	ErrInvalidParamName Error = "invalid auth param name"
	// ErrUnexpectedCharacter is returned when an auth-param name is not followed by "=".
	ErrUnexpectedCharacter Error = "unexpected character in auth param"
	// ErrInvalidParamValue is returned when an auth-param value is neither a token nor a quoted-string.
	ErrInvalidParamValue Error = "invalid auth param value"
	// ErrMalformedValue is returned when unparsed bytes remain after the last auth-param.
	ErrMalformedValue Error = "malformed value"
)

// Causes wrapped by [*ParseError].
const (
	ErrUnexpectedEndOfString          Error = "unexpected end of string"
	ErrInvalidCharacterInQuotedString Error = "invalid character in quoted string"
	ErrInvalidToken                   Error = "invalid token"

	errExpectedSpace  Error = "expected a space"
	errExpectedEquals Error = "wanted an ="
)

// Common errors.
const (
	// ErrInvalidInput is returned by the formatters when the header cannot be serialized.
	ErrInvalidInput Error = "invalid input"
	// ErrHeaderNotFound is returned by the [net/http] helpers when the field is absent.
	ErrHeaderNotFound Error = "header not found"
	// ErrChallengeNotFound is returned by [Challenges.For] when no challenge matches.
	ErrChallengeNotFound Error = "challenge not found"
	// ErrAmbiguousChallenge is returned by [Challenges.For] when several challenges match.
	ErrAmbiguousChallenge Error = "ambiguous challenge"
)

// NewInvalidInputError creates a new error with [ErrInvalidInput] or
// wraps provided error with [ErrInvalidInput].
func NewInvalidInputError(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidInput, args...) //errtrace:skip
}

// ParseError describes a rejected header value.
// It matches both its Kind and its cause with [errors.Is].
type ParseError struct {
	// Kind is the parse error class, e.g. [ErrInvalidParamValue].
	Kind Error
	// Pos is the byte offset in Input where the failure was detected.
	Pos int
	// Input is the rejected value.
	Input string
	// Err is the underlying cause, e.g. [ErrUnexpectedEndOfString]. May be nil.
	Err error
}

const maxErrInputLen = 64

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(string(e.Kind))
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Kind != ErrInvalidInputType {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.Pos))
	}
	sb.WriteString(" in ")
	sb.WriteString(strconv.Quote(util.Ellipsis(e.Input, maxErrInputLen)))
	return sb.String()
}

func (e *ParseError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Grammar marks the error as a grammar error.
func (*ParseError) Grammar() bool { return true }
