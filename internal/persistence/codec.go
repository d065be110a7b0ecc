package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/petrijr/featuretour/pkg/api"
)

// EncodeDocument serializes a tour document as JSON, the same format the
// recorder exports, so stored rows can be inspected and re-imported.
func EncodeDocument(doc api.TourDocument) ([]byte, error) {
	if doc.Steps == nil {
		doc.Steps = []api.StepDocument{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode tour %q: %w", doc.TourID, err)
	}
	return data, nil
}

// DecodeDocument parses a JSON tour document.
func DecodeDocument(data []byte) (api.TourDocument, error) {
	var doc api.TourDocument
	if len(data) == 0 {
		return doc, ErrTourNotFound
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return api.TourDocument{}, fmt.Errorf("decode tour document: %w", err)
	}
	if doc.Steps == nil {
		doc.Steps = []api.StepDocument{}
	}
	return doc, nil
}
