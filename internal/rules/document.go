package rules

import (
	"encoding/json"
	"fmt"
)

// Document is the hand-off artifact for export and scheduler collaborators:
// the ordered rule set plus the weight profile. Its serialization must
// round-trip exactly — same variant, same fields — through JSON.
type Document struct {
	Rules   []Rule        `json:"rules" yaml:"rules"`
	Weights WeightProfile `json:"weights" yaml:"weights"`
}

// Marshal renders the document as indented JSON, the shape consumed by the
// export bundle (rules.json).
func (d Document) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rule document: %w", err)
	}
	return b, nil
}

// ParseDocument decodes a previously serialized document.
func ParseDocument(b []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return Document{}, fmt.Errorf("parse rule document: %w", err)
	}
	return d, nil
}
