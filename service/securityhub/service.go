// Package securityhub retrieves OCSF findings from AWS Security Hub.
package securityhub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/thirukguru/ocsf-export/service/filter"
)

// NewService creates a new Security Hub finding service.
func NewService(cfg aws.Config) Service {
	return &service{
		client: securityhub.NewFromConfig(cfg),
	}
}

// GetFindings pages through GetFindingsV2 until the service has no more pages
// or opts.MaxItems findings have been collected. Any page failure discards
// everything retrieved so far.
func (s *service) GetFindings(ctx context.Context, expr filter.Expression, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &RetrievalError{Kind: KindUnexpected, Message: fmt.Sprint(r)}
		}
	}()

	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	pageSize := min(opts.PageSize, opts.MaxItems)

	input := &securityhub.GetFindingsV2Input{
		Filters:    expr.ToOcsf(),
		MaxResults: aws.Int32(int32(pageSize)),
	}
	paginator := securityhub.NewGetFindingsV2Paginator(s.client, input, func(o *securityhub.GetFindingsV2PaginatorOptions) {
		o.StopOnDuplicateToken = true
	})

	res := &Result{Findings: []json.RawMessage{}}
	for paginator.HasMorePages() && len(res.Findings) < opts.MaxItems {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyError(err)
		}

		added := 0
		for _, f := range page.Findings {
			// The remote cap is cooperative; never hand back more than asked for.
			if len(res.Findings) >= opts.MaxItems {
				break
			}
			raw, err := f.MarshalSmithyDocument()
			if err != nil {
				return nil, &RetrievalError{Kind: KindTransport, Message: fmt.Sprintf("failed to decode finding: %v", err), Err: err}
			}
			res.Findings = append(res.Findings, json.RawMessage(raw))
			added++
		}

		res.Pages++
		stat := PageStat{Index: res.Pages, Items: added, Total: len(res.Findings)}
		res.Stats = append(res.Stats, stat)
		if opts.OnPage != nil {
			opts.OnPage(stat)
		}
	}

	return res, nil
}
