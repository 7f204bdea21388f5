package spec

// ContentType identifies the media type of a request body.
type ContentType int

const (
	// ContentTypeNone means no Content-Type header is added.
	ContentTypeNone ContentType = iota
	ContentTypeJSON
	ContentTypeText
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeJSON:
		return "json"
	case ContentTypeText:
		return "text"
	default:
		return "none"
	}
}

// HeaderValue returns the value to send in a Content-Type header, or "" for ContentTypeNone.
func (c ContentType) HeaderValue() string {
	switch c {
	case ContentTypeJSON:
		return "application/json"
	case ContentTypeText:
		return "text/plain; charset=utf-8"
	default:
		return ""
	}
}

// ParseContentType accepts the names used in configuration files.
func ParseContentType(name string) (ContentType, error) {
	switch name {
	case "", "none":
		return ContentTypeNone, nil
	case "json", "JSON":
		return ContentTypeJSON, nil
	case "text", "TEXT":
		return ContentTypeText, nil
	}
	return ContentTypeNone, invalidConfig("contentType", "unknown content type %q", name)
}
