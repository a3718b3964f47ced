package httpwrap

// A Header represents the key-value pairs sent with every API request.
// It is not an array of strings, so it won't work if you have multiple headers with the same key.
type Header map[string]string

func NewHeader() Header {
	return Header{"Accept": "application/json"}
}

// Add adds a key-value pair to the header.
func (h Header) Add(key, value string) {
	h[key] = value
}

// Merge returns a new header with the entries of other layered over h.
func (h Header) Merge(other Header) Header {
	merged := make(Header, len(h)+len(other))
	for k, v := range h {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
