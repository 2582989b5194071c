package auth

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/types"
	"github.com/ghettovoice/httpauth/internal/util"
)

// Challenges is a list of challenges, one per WWW-Authenticate or Proxy-Authenticate field line.
type Challenges []*Header

// ParseChallenges parses every value with the strict parser.
// See [Parser.ParseChallenges].
func ParseChallenges(values []string) (Challenges, error) {
	return errtrace.Wrap2(defParser.ParseChallenges(values))
}

// ParseChallenges parses each value as a single challenge.
// It stops at the first invalid value, the returned error names its index
// and wraps the [*ParseError].
func (p *Parser) ParseChallenges(values []string) (Challenges, error) {
	if len(values) == 0 {
		return nil, nil
	}

	cs := make(Challenges, 0, len(values))
	for i, v := range values {
		hdr, err := p.Parse(v)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("challenge %d: %w", i, err))
		}
		cs = append(cs, hdr)
	}
	return cs, nil
}

// Is reports whether there is a challenge matching the scheme and query.
// See [Challenges.For] for the matching rules.
func (cs Challenges) Is(scheme string, query ...Param) bool {
	for _, hdr := range cs {
		if matchChallenge(hdr, scheme, query) {
			return true
		}
	}
	return false
}

// For returns the only challenge with the given scheme whose params include every query param.
// The scheme is matched case-insensitively, query names case-insensitively and values exactly.
// An empty query matches any challenge of the scheme, including token68 and scheme-only ones.
//
// It returns [ErrChallengeNotFound] if nothing matches and [ErrAmbiguousChallenge]
// if more than one challenge matches.
func (cs Challenges) For(scheme string, query ...Param) (*Header, error) {
	var found *Header
	for _, hdr := range cs {
		if !matchChallenge(hdr, scheme, query) {
			continue
		}
		if found != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: scheme %q", ErrAmbiguousChallenge, scheme))
		}
		found = hdr
	}
	if found == nil {
		return nil, errtrace.Wrap(fmt.Errorf("%w: scheme %q", ErrChallengeNotFound, scheme))
	}
	return found, nil
}

func matchChallenge(hdr *Header, scheme string, query []Param) bool {
	if hdr == nil || !util.EqFold(hdr.Scheme, scheme) {
		return false
	}
	ps := hdr.Params()
	for _, q := range query {
		var ok bool
		for _, v := range ps.All(q.Name) {
			if v == q.Value {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Schemes returns schemes of all challenges in order.
func (cs Challenges) Schemes() []string {
	if len(cs) == 0 {
		return nil
	}
	ss := make([]string, len(cs))
	for i, hdr := range cs {
		if hdr != nil {
			ss[i] = hdr.Scheme
		}
	}
	return ss
}

func (cs Challenges) Clone() Challenges {
	if cs == nil {
		return nil
	}
	cs2 := make(Challenges, len(cs))
	for i, hdr := range cs {
		cs2[i] = types.Clone[*Header](hdr)
	}
	return cs2
}

func (cs Challenges) Equal(val any) bool {
	var other Challenges
	switch v := val.(type) {
	case Challenges:
		other = v
	case *Challenges:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if len(cs) != len(other) {
		return false
	}
	for i := range cs {
		if !cs[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
