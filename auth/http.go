package auth

import (
	"net/http"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/errorutil"
)

// Header field names.
const (
	FieldAuthorization      = "Authorization"
	FieldProxyAuthorization = "Proxy-Authorization"
	FieldWWWAuthenticate    = "Www-Authenticate"
	FieldProxyAuthenticate  = "Proxy-Authenticate"
)

// Authorization parses the Authorization field of h (RFC 7235 Section 4.2).
// Only the first field line is used.
func Authorization(h http.Header) (*Header, error) {
	return errtrace.Wrap2(parseCredentialsField(h, FieldAuthorization))
}

// SetAuthorization replaces the Authorization field in h.
func SetAuthorization(h http.Header, hdr *Header) {
	h.Set(FieldAuthorization, hdr.Render(nil))
}

// ProxyAuthorization parses the Proxy-Authorization field of h (RFC 7235 Section 4.4).
func ProxyAuthorization(h http.Header) (*Header, error) {
	return errtrace.Wrap2(parseCredentialsField(h, FieldProxyAuthorization))
}

// SetProxyAuthorization replaces the Proxy-Authorization field in h.
func SetProxyAuthorization(h http.Header, hdr *Header) {
	h.Set(FieldProxyAuthorization, hdr.Render(nil))
}

// WWWAuthenticate parses the WWW-Authenticate field lines of h (RFC 7235 Section 4.1).
// Each field line must hold a single challenge.
func WWWAuthenticate(h http.Header) (Challenges, error) {
	return errtrace.Wrap2(parseChallengesField(h, FieldWWWAuthenticate))
}

// SetWWWAuthenticate replaces the WWW-Authenticate field in h with one field line per challenge.
// An empty list removes the field.
func SetWWWAuthenticate(h http.Header, cs Challenges) {
	setChallengesField(h, FieldWWWAuthenticate, cs)
}

// ProxyAuthenticate parses the Proxy-Authenticate field lines of h (RFC 7235 Section 4.3).
func ProxyAuthenticate(h http.Header) (Challenges, error) {
	return errtrace.Wrap2(parseChallengesField(h, FieldProxyAuthenticate))
}

// SetProxyAuthenticate replaces the Proxy-Authenticate field in h.
func SetProxyAuthenticate(h http.Header, cs Challenges) {
	setChallengesField(h, FieldProxyAuthenticate, cs)
}

func parseCredentialsField(h http.Header, name string) (*Header, error) {
	vs := h.Values(name)
	if len(vs) == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrHeaderNotFound, name))
	}
	return errtrace.Wrap2(Parse(vs[0]))
}

func parseChallengesField(h http.Header, name string) (Challenges, error) {
	vs := h.Values(name)
	if len(vs) == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrHeaderNotFound, name))
	}
	return errtrace.Wrap2(ParseChallenges(vs))
}

func setChallengesField(h http.Header, name string, cs Challenges) {
	h.Del(name)
	for _, hdr := range cs {
		if hdr == nil {
			continue
		}
		h.Add(name, hdr.Render(nil))
	}
}
