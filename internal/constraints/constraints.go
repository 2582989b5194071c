// Package constraints provides type constraints shared by the parsers.
package constraints

// Byteseq is any header value representation: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
