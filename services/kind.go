package services

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind classifies a failure to parse a services database.
type Kind int

const (
	// KindUnknown is the kind of errors not produced by this package.
	KindUnknown Kind = iota // unknown
	// KindInvalidSource means the path is missing or not a regular file.
	KindInvalidSource // invalid source
	// KindOpenFailed means the source exists but could not be opened.
	KindOpenFailed // open failed
	// KindReadFailed means an I/O fault occurred while reading lines.
	KindReadFailed // read failed
	// KindMalformedInput means the first token of an entry line is a comment,
	// or the line has no tokens at all.
	KindMalformedInput // malformed input
	// KindMissingPortProtocolField means the port/protocol token is absent or
	// its port portion is a comment.
	KindMissingPortProtocolField // missing port/protocol field
	// KindMalformedPort means the port is not a non-negative decimal integer.
	KindMalformedPort // malformed port
	// KindMissingProtocolField means nothing usable follows the '/'.
	KindMissingProtocolField // missing protocol field
)

// Kinds returns every kind produced by this package, in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindInvalidSource,
		KindOpenFailed,
		KindReadFailed,
		KindMalformedInput,
		KindMissingPortProtocolField,
		KindMalformedPort,
		KindMissingProtocolField,
	}
}

// IsFormat reports whether k describes malformed content rather than an I/O
// or precondition failure. Only format failures are subject to the
// ignoreErrors policy.
func (k Kind) IsFormat() bool {
	switch k {
	case KindMalformedInput,
		KindMissingPortProtocolField,
		KindMalformedPort,
		KindMissingProtocolField:
		return true
	default:
		return false
	}
}
