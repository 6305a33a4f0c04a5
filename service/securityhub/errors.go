package securityhub

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// ErrorKind categorizes retrieval failures for operator triage.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindRemoteService
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindRemoteService:
		return "remote"
	case KindTransport:
		return "transport"
	default:
		return "unexpected"
	}
}

// RetrievalError is returned for every failed retrieval.
type RetrievalError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *RetrievalError) Error() string {
	switch e.Kind {
	case KindRemoteService:
		return fmt.Sprintf("AWS API error - %s: %s", e.Code, e.Message)
	case KindTransport:
		return fmt.Sprintf("AWS SDK error - %s", e.Message)
	default:
		return fmt.Sprintf("Unexpected error - %s", e.Message)
	}
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// classifyError maps an SDK error onto a RetrievalError. API faults are
// checked first because the SDK wraps them in an OperationError.
func classifyError(err error) *RetrievalError {
	var re *RetrievalError
	if errors.As(err, &re) {
		return re
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &RetrievalError{
			Kind:    KindRemoteService,
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Err:     err,
		}
	}

	var opErr *smithy.OperationError
	var sendErr *smithyhttp.RequestSendError
	var canceled *smithy.CanceledError
	if errors.As(err, &opErr) || errors.As(err, &sendErr) || errors.As(err, &canceled) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &RetrievalError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	return &RetrievalError{Kind: KindUnexpected, Message: err.Error(), Err: err}
}
