package inventory

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/cloudscope/cloudscope/pkg/errors"
)

// Top-level sections a document may carry. Anything else is reported as an
// unrecognized field during validation.
var knownSections = map[string]bool{
	"metadata":          true,
	"global_services":   true,
	"regional_services": true,
	"errors":            true,
}

// Decode parses and validates a raw inventory document.
//
// Validation is structural only: the payload must be a JSON object carrying at
// least one known section. Unrecognized top-level fields fail the document and
// are listed in the error so the caller can report what was rejected. Partial
// or empty sections are tolerated; per-entry problems surface later as
// error-typed graph nodes, not as decode failures.
func Decode(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "document is not a JSON object")
	}

	var unknown []string
	recognized := 0
	for key := range raw {
		if knownSections[key] {
			recognized++
		} else {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.New(errors.ErrCodeIngestion, "unrecognized fields: %v", unknown)
	}
	if recognized == 0 {
		return nil, errors.New(errors.ErrCodeIngestion, "document carries no inventory sections")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode inventory")
	}
	return &doc, nil
}

// DecodeReader decodes a document from r. Used by the upload handler.
func DecodeReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIngestion, err, "read document")
	}
	return Decode(data)
}

// ReadFile loads an inventory document from disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIngestion, err, "read %s", path)
	}
	return Decode(data)
}
