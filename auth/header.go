package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/errorutil"
	"github.com/ghettovoice/httpauth/internal/grammar"
	"github.com/ghettovoice/httpauth/internal/ioutil"
	"github.com/ghettovoice/httpauth/internal/types"
	"github.com/ghettovoice/httpauth/internal/util"
)

// RenderOptions control how a header value is serialized.
// See [types.RenderOptions].
type RenderOptions = types.RenderOptions

// Credentials are the data following the auth scheme.
// It is either a [Token68] or [Params]. The interface is sealed.
type Credentials interface {
	types.ValidFlag
	types.Equalable
	renderTo(cw *ioutil.CountingWriter, opts *RenderOptions)
}

// Header represents a parsed authentication header value.
type Header struct {
	// Scheme is the auth scheme token as it appeared in the value, e.g. "Basic".
	Scheme string
	// Credentials are nil when the value consists of the scheme only.
	Credentials Credentials
}

// Token68 returns the token68 credentials, if any.
func (hdr *Header) Token68() (string, bool) {
	if hdr == nil {
		return "", false
	}
	t, ok := hdr.Credentials.(Token68)
	return string(t), ok
}

// Params returns the auth-params, if any.
func (hdr *Header) Params() Params {
	if hdr == nil {
		return nil
	}
	ps, _ := hdr.Credentials.(Params)
	return ps
}

// RenderTo writes the header value to w.
// The value is written as is, use [Format] to validate it first.
func (hdr *Header) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(hdr.Scheme) //nolint:errcheck
	if !isEmpty(hdr.Credentials) {
		cw.WriteString(" ") //nolint:errcheck
		hdr.Credentials.renderTo(cw, opts)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the header value as a string.
func (hdr *Header) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (hdr *Header) String() string { return hdr.Render(nil) }

func (hdr *Header) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f, &RenderOptions{SpaceAfterComma: true}) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.String())
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render(&RenderOptions{SpaceAfterComma: true})))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.String()))
		return
	default:
		type hideMethods Header
		type Header hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Header)(hdr))
		return
	}
}

func (hdr *Header) Clone() *Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	if ps, ok := hdr.Credentials.(Params); ok {
		hdr2.Credentials = ps.Clone()
	}
	return &hdr2
}

// Equal reports whether hdr and val describe the same value.
// Schemes and param names are compared case-insensitively, param values and token68 exactly.
// Param order matters.
func (hdr *Header) Equal(val any) bool {
	var other *Header
	switch v := val.(type) {
	case Header:
		other = &v
	case *Header:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	if !util.EqFold(hdr.Scheme, other.Scheme) {
		return false
	}
	// empty params render as the bare scheme
	if isEmpty(hdr.Credentials) || isEmpty(other.Credentials) {
		return isEmpty(hdr.Credentials) && isEmpty(other.Credentials)
	}
	return types.IsEqual(hdr.Credentials, other.Credentials)
}

// IsValid reports whether hdr can be formatted into a value that parses back to hdr.
func (hdr *Header) IsValid() bool { return hdr.Validate() == nil }

// Validate checks that hdr can be serialized.
// The returned error wraps [ErrInvalidInput].
func (hdr *Header) Validate() error {
	if hdr == nil {
		return errtrace.Wrap(NewInvalidInputError("nil header"))
	}
	if !grammar.IsToken(hdr.Scheme) {
		return errtrace.Wrap(NewInvalidInputError("scheme %q is not a token", hdr.Scheme))
	}
	switch crd := hdr.Credentials.(type) {
	case nil:
	case Token68:
		if !types.IsValid(crd) {
			return errtrace.Wrap(NewInvalidInputError("%q is not a token68", string(crd)))
		}
	case Params:
		for _, p := range crd {
			if !grammar.IsToken(p.Name) {
				return errtrace.Wrap(NewInvalidInputError("param name %q is not a token", p.Name))
			}
			if !grammar.IsQuotable(p.Value) {
				return errtrace.Wrap(NewInvalidInputError("param %q value cannot be quoted", p.Name))
			}
		}
	}
	return nil
}

type headerJSON struct {
	Scheme  string  `json:"scheme"`
	Token68 *string `json:"token68,omitempty"`
	Params  Params  `json:"params,omitempty"`
}

// MarshalJSON encodes hdr as an object:
//
//	{"scheme":"Digest","params":[["realm","example.com"],["qop","auth"]]}
func (hdr *Header) MarshalJSON() ([]byte, error) {
	if hdr == nil {
		return []byte("null"), nil
	}

	v := headerJSON{Scheme: hdr.Scheme}
	switch crd := hdr.Credentials.(type) {
	case Token68:
		t := string(crd)
		v.Token68 = &t
	case Params:
		v.Params = crd
	}
	return errtrace.Wrap2(json.Marshal(v))
}

var zeroHeader Header

// UnmarshalJSON decodes hdr either from an object produced by [Header.MarshalJSON]
// or from a JSON string holding a header value, which is parsed with [Parse].
// Other JSON types are rejected with [ErrInvalidInputType].
func (hdr *Header) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) == 0 {
		*hdr = zeroHeader
		return errtrace.Wrap(&ParseError{Kind: ErrInvalidInputType, Err: ErrUnexpectedEndOfString})
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*hdr = zeroHeader
			return errtrace.Wrap(err)
		}
		h, err := Parse(s)
		if err != nil {
			*hdr = zeroHeader
			return errtrace.Wrap(err)
		}
		*hdr = *h
		return nil
	case '{':
		var v headerJSON
		if err := json.Unmarshal(data, &v); err != nil {
			*hdr = zeroHeader
			return errtrace.Wrap(err)
		}
		h := Header{Scheme: v.Scheme}
		switch {
		case v.Token68 != nil && len(v.Params) > 0:
			*hdr = zeroHeader
			return errtrace.Wrap(NewInvalidInputError("both token68 and params are set"))
		case v.Token68 != nil:
			h.Credentials = Token68(*v.Token68)
		case len(v.Params) > 0:
			h.Credentials = v.Params
		}
		if err := h.Validate(); err != nil {
			*hdr = zeroHeader
			return errtrace.Wrap(err)
		}
		*hdr = h
		return nil
	default:
		*hdr = zeroHeader
		return errtrace.Wrap(&ParseError{
			Kind:  ErrInvalidInputType,
			Input: string(data),
			Err:   errorutil.Errorf("expected a JSON string or object, got %s", jsonKind(data[0])),
		})
	}
}

func jsonKind(c byte) string {
	switch c {
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}

// MarshalText renders hdr with default options.
func (hdr *Header) MarshalText() ([]byte, error) {
	if err := hdr.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(hdr.Render(nil)), nil
}

// UnmarshalText parses text with [Parse].
func (hdr *Header) UnmarshalText(text []byte) error {
	h, err := Parse(text)
	if err != nil {
		*hdr = zeroHeader
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

func isEmpty(crd Credentials) bool {
	switch v := crd.(type) {
	case nil:
		return true
	case Params:
		return len(v) == 0
	default:
		return false
	}
}

// Token68 is a single token68 credentials value, e.g. base64 encoded user-pass of the Basic scheme.
type Token68 string

func (t Token68) renderTo(cw *ioutil.CountingWriter, _ *RenderOptions) {
	cw.WriteString(string(t)) //nolint:errcheck
}

func (t Token68) Equal(val any) bool {
	switch v := val.(type) {
	case Token68:
		return t == v
	case *Token68:
		return v != nil && t == *v
	default:
		return false
	}
}

func (t Token68) IsValid() bool { return grammar.IsToken68(t) }
