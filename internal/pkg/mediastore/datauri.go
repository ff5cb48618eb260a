package mediastore

import (
	"errors"
	"regexp"
)

// dataURIPattern matches the inline upload envelope "data:<mime>;base64,<payload>".
var dataURIPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ErrInvalidDataURI is returned when an inline payload is not a valid data URI
var ErrInvalidDataURI = errors.New("invalid base64 data URI")

// ParseDataURI splits a data URI into its MIME type and base64 payload.
// The payload is kept in its base64 text form; it is stored and served
// without being decoded.
func ParseDataURI(uri string) (dataType, base64Data string, err error) {
	matches := dataURIPattern.FindStringSubmatch(uri)
	if len(matches) != 3 {
		return "", "", ErrInvalidDataURI
	}
	return matches[1], matches[2], nil
}

// FormatDataURI builds the displayable data URI for a stored media payload.
func FormatDataURI(dataType, base64Data string) string {
	return "data:" + dataType + ";base64," + base64Data
}
