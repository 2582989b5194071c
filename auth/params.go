package auth

import (
	"encoding/json"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpauth/internal/errorutil"
	"github.com/ghettovoice/httpauth/internal/grammar"
	"github.com/ghettovoice/httpauth/internal/ioutil"
	"github.com/ghettovoice/httpauth/internal/util"
)

// Param is a single auth-param. Value holds the unescaped content of a quoted-string.
type Param struct {
	Name  string
	Value string
}

// MarshalJSON encodes p as a two element array.
func (p Param) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(json.Marshal([2]string{p.Name, p.Value}))
}

func (p *Param) UnmarshalJSON(data []byte) error {
	var v []string
	if err := json.Unmarshal(data, &v); err != nil {
		return errtrace.Wrap(err)
	}
	if len(v) != 2 {
		return errtrace.Wrap(NewInvalidInputError(errorutil.Errorf("param: got %d elements, want 2", len(v))))
	}
	p.Name, p.Value = v[0], v[1]
	return nil
}

// Params is an ordered list of auth-params. Duplicate names are preserved,
// lookups match names case-insensitively.
type Params []Param

// Get returns the value of the first param with the given name.
func (ps Params) Get(name string) (string, bool) { return ps.First(name) }

// First returns the value of the first param with the given name.
func (ps Params) First(name string) (string, bool) {
	for _, p := range ps {
		if util.EqFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Last returns the value of the last param with the given name.
func (ps Params) Last(name string) (string, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if util.EqFold(ps[i].Name, name) {
			return ps[i].Value, true
		}
	}
	return "", false
}

// All returns values of all params with the given name in order of appearance.
func (ps Params) All(name string) []string {
	var vs []string
	for _, p := range ps {
		if util.EqFold(p.Name, name) {
			vs = append(vs, p.Value)
		}
	}
	return vs
}

func (ps Params) Has(name string) bool {
	_, ok := ps.Get(name)
	return ok
}

func (ps Params) Clone() Params { return slices.Clone(ps) }

func (ps Params) renderTo(cw *ioutil.CountingWriter, opts *RenderOptions) {
	sep := opts.ParamSep()
	for i, p := range ps {
		if i > 0 {
			cw.WriteString(sep) //nolint:errcheck
		}
		cw.WriteString(p.Name) //nolint:errcheck
		cw.WriteString("=")    //nolint:errcheck
		if !opts.QuoteAll() && grammar.IsToken(p.Value) {
			cw.WriteString(p.Value) //nolint:errcheck
			continue
		}
		cw.WriteString(grammar.Quote(p.Value)) //nolint:errcheck
	}
}

func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return slices.EqualFunc(ps, other, func(p1, p2 Param) bool {
		return util.EqFold(p1.Name, p2.Name) && p1.Value == p2.Value
	})
}

// IsValid reports whether ps is non-empty and every param can be rendered.
func (ps Params) IsValid() bool {
	if len(ps) == 0 {
		return false
	}
	for _, p := range ps {
		if !grammar.IsToken(p.Name) || !grammar.IsQuotable(p.Value) {
			return false
		}
	}
	return true
}
