package securityhub

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/thirukguru/ocsf-export/service/filter"
)

const (
	// DefaultPageSize is the number of findings requested per page.
	DefaultPageSize = 100
	// DefaultMaxItems caps the total number of findings retrieved.
	DefaultMaxItems = 10000
)

// SecurityHubClientAPI is the subset of the Security Hub client used by the service.
type SecurityHubClientAPI interface {
	GetFindingsV2(ctx context.Context, params *securityhub.GetFindingsV2Input, optFns ...func(*securityhub.Options)) (*securityhub.GetFindingsV2Output, error)
}

// PageStat describes one retrieved page.
type PageStat struct {
	Index int
	Items int
	Total int
}

// Options control pagination.
type Options struct {
	PageSize int
	MaxItems int
	// OnPage is called after every page. It must not retain or modify findings.
	OnPage func(PageStat)
}

// Result is the complete, ordered output of a retrieval.
type Result struct {
	Findings []json.RawMessage
	Pages    int
	Stats    []PageStat
}

type service struct {
	client SecurityHubClientAPI
}

// Service is the interface for OCSF finding retrieval.
type Service interface {
	GetFindings(ctx context.Context, expr filter.Expression, opts Options) (*Result, error)
}
