package srctype

// Payload is a fetched byte sequence with the metadata the transport declared.
type Payload struct {
	// Data is the complete payload. It is not modified after creation.
	Data []byte

	// Length is the declared content length, or -1 when none was declared.
	Length int64

	// MediaType is the declared content type, or empty.
	MediaType string
}
