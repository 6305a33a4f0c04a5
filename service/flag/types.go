package flag

import (
	"github.com/thirukguru/ocsf-export/model"
	"github.com/thirukguru/ocsf-export/service/config"
)

type service struct {
	configService config.Service
}

// Service is the interface for CLI flag service.
type Service interface {
	GetParsedFlags() (model.Flags, error)
}

// ValidationError reports bad command line input. It is raised before any
// AWS call is made.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
