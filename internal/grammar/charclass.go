package grammar

// charClass is a bit set of the grammar classes a byte belongs to.
//
// RFC 7230 Section 3.2.6:
//
//	tchar         = "!" / "#" / "$" / "%" / "&" / "'" / "*"
//	              / "+" / "-" / "." / "^" / "_" / "`" / "|" / "~"
//	              / DIGIT / ALPHA
//	qdtext        = HTAB / SP / %x21 / %x23-5B / %x5D-7E / obs-text
//	quoted-pair   = "\" ( HTAB / SP / VCHAR / obs-text )
//	obs-text      = %x80-FF
//
// RFC 7235 Section 2.1:
//
//	token68       = 1*( ALPHA / DIGIT / "-" / "." / "_" / "~" / "+" / "/" ) *"="
type charClass uint8

const (
	cToken charClass = 1 << iota
	cToken68
	cQuotedText
	cQuotedPair
	cLegacyValue
)

var charClasses [256]charClass

func init() {
	for i := range 256 {
		c := byte(i)
		var cls charClass
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			cls |= cToken | cToken68
		case c == '-' || c == '.' || c == '_' || c == '~' || c == '+':
			cls |= cToken | cToken68
		case c == '!' || c == '#' || c == '$' || c == '%' || c == '&' || c == '\'' ||
			c == '*' || c == '^' || c == '`' || c == '|':
			cls |= cToken
		case c == '/':
			cls |= cToken68
		}

		switch {
		case c == '\t' || c == ' ' || c == '!',
			c >= 0x23 && c <= 0x5B,
			c >= 0x5D && c <= 0x7E,
			c >= 0x80:
			cls |= cQuotedText
		}
		if c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			cls |= cQuotedPair
		}

		if cls&cToken != 0 || c == '/' || c == ';' {
			cls |= cLegacyValue
		}
		charClasses[c] = cls
	}
}

// IsTokenChar reports whether c is an RFC 7230 tchar.
func IsTokenChar(c byte) bool { return charClasses[c]&cToken != 0 }

// IsToken68Char reports whether c belongs to the token68 alphabet, not counting the "=" padding.
func IsToken68Char(c byte) bool { return charClasses[c]&cToken68 != 0 }

// IsQuotedTextChar reports whether c may appear unescaped inside a quoted-string.
func IsQuotedTextChar(c byte) bool { return charClasses[c]&cQuotedText != 0 }

// IsQuotedPairChar reports whether c may follow a backslash inside a quoted-string.
func IsQuotedPairChar(c byte) bool { return charClasses[c]&cQuotedPair != 0 }

// IsLegacyValueChar reports whether c may appear in an unquoted auth-param value
// emitted by relaxed producers (a tchar, "/" or ";").
func IsLegacyValueChar(c byte) bool { return charClasses[c]&cLegacyValue != 0 }

// IsWS reports whether c is a space or a horizontal tab.
func IsWS(c byte) bool { return c == ' ' || c == '\t' }
