// Package types contains common interfaces used across the auth package.
package types

// RenderOptions is a struct that is used to pass options to rendering methods.
// A nil *RenderOptions means defaults.
type RenderOptions struct {
	// QuoteValues renders every auth-param value as a quoted-string,
	// even if it is a valid token.
	QuoteValues bool `json:"quote_values,omitempty"`
	// SpaceAfterComma separates auth-params with ", " instead of ",".
	SpaceAfterComma bool `json:"space_after_comma,omitempty"`
}

func (o *RenderOptions) QuoteAll() bool { return o != nil && o.QuoteValues }

func (o *RenderOptions) ParamSep() string {
	if o != nil && o.SpaceAfterComma {
		return ", "
	}
	return ","
}

type ValidFlag interface {
	IsValid() bool
}

// IsValid returns true if the value has method `IsValid() bool` and it returns true.
func IsValid(v any) bool {
	vv, ok := v.(ValidFlag)
	return ok && vv.IsValid()
}

type Equalable interface {
	Equal(val any) bool
}

// IsEqual reports whether v1 and v2 are equal.
// Nil values are equal only to each other.
func IsEqual(v1, v2 any) bool {
	if v1 == nil || v2 == nil {
		return v1 == nil && v2 == nil
	}
	if e, ok := v1.(Equalable); ok {
		return e.Equal(v2)
	}
	return v1 == v2
}

type Cloneable[T any] interface {
	Clone() T
}

// Clone clones the value if it has method `Clone() T`, otherwise returns a zero value.
func Clone[T any](v any) T {
	if v1, ok := v.(Cloneable[T]); ok {
		return v1.Clone()
	}
	if v == nil {
		var zero T
		return zero
	}
	v1, _ := v.(T)
	return v1
}
