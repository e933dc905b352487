// Package feed decodes the provider's XML catalog into raw records,
// validates them structurally, and fetches the document over HTTP.
package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

var errEmptyDocument = errors.New("empty document")

// MalformedFeedError is returned when the raw document cannot be decoded
// into a record tree at all. It is fatal for the current cycle.
type MalformedFeedError struct {
	Err error
}

func (e *MalformedFeedError) Error() string {
	return fmt.Sprintf("malformed feed: %v", e.Err)
}

func (e *MalformedFeedError) Unwrap() error {
	return e.Err
}

// Parse decodes a raw feed document. No domain validation happens here;
// a well-formed document with odd values still parses.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &MalformedFeedError{Err: errEmptyDocument}
	}

	var doc Document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &MalformedFeedError{Err: err}
	}
	return &doc, nil
}
