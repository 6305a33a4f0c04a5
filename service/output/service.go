// Package output writes exported findings as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// NewService creates an output service writing to w when no file is given.
func NewService(w io.Writer) Service {
	return &service{
		writeFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o644)
		},
		stdout: func(data []byte) error {
			_, err := w.Write(data)
			return err
		},
	}
}

func (s *service) WriteFindings(findings []json.RawMessage, path string) error {
	if findings == nil {
		findings = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode findings: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		return s.stdout(data)
	}
	if err := s.writeFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
