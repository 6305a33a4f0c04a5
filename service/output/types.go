package output

import "encoding/json"

type service struct {
	writeFile func(name string, data []byte) error
	stdout    func(data []byte) error
}

// Service defines the interface for writing exported findings.
type Service interface {
	// WriteFindings writes findings as one indented JSON array to path, or to
	// stdout when path is empty.
	WriteFindings(findings []json.RawMessage, path string) error
}
