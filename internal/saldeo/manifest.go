package saldeo

import "encoding/xml"

// Manifest is the XML description of documents submitted in one request.
// It is sent gzip+Base64 packed in the "command" multipart field.
type Manifest struct {
	XMLName   xml.Name   `xml:"ROOT"`
	Documents []Document `xml:"DOCUMENTS>DOCUMENT"`
}

// Document is a single manifest entry. AttachmentID links the entry to the
// multipart field "attmnt_<id>" carrying its packed binary payload.
type Document struct {
	Year         int    `xml:"YEAR"`
	Month        string `xml:"MONTH"`
	Filename     string `xml:"FILENAME"`
	AttachmentID string `xml:"ATTMNT_ID"`
}

// Validate checks the 1:1 correlation between manifest entries and the
// attachment set: every referenced attachment identifier must have exactly
// one payload, and every payload exactly one referencing entry. Runs before
// any network I/O.
func (m *Manifest) Validate(attachments map[string][]byte) error {
	seen := make(map[string]bool, len(m.Documents))
	for _, doc := range m.Documents {
		if doc.AttachmentID == "" {
			return &ValidationError{Message: "document entry has no attachment identifier"}
		}
		if seen[doc.AttachmentID] {
			return &ValidationError{AttachmentID: doc.AttachmentID, Message: "attachment identifier referenced by more than one document"}
		}
		seen[doc.AttachmentID] = true
		if _, ok := attachments[doc.AttachmentID]; !ok {
			return &ValidationError{AttachmentID: doc.AttachmentID, Message: "no attachment payload for manifest entry"}
		}
	}
	for id := range attachments {
		if !seen[id] {
			return &ValidationError{AttachmentID: id, Message: "attachment payload has no referencing manifest entry"}
		}
	}
	return nil
}

// Encode renders the manifest with the provider's XML declaration.
func (m *Manifest) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
