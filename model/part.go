package model

// Part is one node of a MIME message, in depth-first traversal order.
// Index is 1-based and assigned by the walker, it does not come from the
// message itself. Payload is nil for containers and for leaves whose body
// could not be decoded.
type Part struct {
	Index       int
	ContentType string
	Container   bool
	Payload     []byte
}

// HasPayload reports whether the part carries decoded payload bytes. An
// empty but present body counts as a payload.
func (p Part) HasPayload() bool {
	return p.Payload != nil
}

// StringMatch locates one matched pattern string inside a scanned buffer.
type StringMatch struct {
	Offset     int64
	Identifier string
	Data       []byte
}

// ScanHit is one pattern-rule match against one decoded rendition of a
// part. Length is the length of the original payload, not of the decoded
// buffer that matched. Decoder is the transform label, empty for the
// identity pass. Hits are reported as they occur and never persisted.
type ScanHit struct {
	PartIndex   int
	Container   bool
	Length      int
	ContentType string
	Namespace   string
	Rule        string
	Decoder     string
	Strings     []StringMatch
}
