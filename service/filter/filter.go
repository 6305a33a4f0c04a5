// Package filter translates CLI finding criteria into the composite filter
// grammar accepted by Security Hub GetFindingsV2.
package filter

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/securityhub/types"
	"github.com/thirukguru/ocsf-export/model"
)

type dimension struct {
	field      string
	comparison Comparison
	policy     combinePolicy
	values     func(model.FilterCriteria) []string
}

// dimensions is evaluated in order so identical input always yields the same
// expression.
var dimensions = []dimension{
	{
		field:      FieldAccountUID,
		comparison: ComparisonEquals,
		policy:     combineOr,
		values: func(c model.FilterCriteria) []string {
			if c.Account == "" {
				return nil
			}
			return []string{c.Account}
		},
	},
	{
		field:      FieldStatus,
		comparison: ComparisonEquals,
		policy:     combineOr,
		values:     func(c model.FilterCriteria) []string { return c.Status },
	},
	{
		field:      FieldSeverity,
		comparison: ComparisonEquals,
		policy:     combineOr,
		values:     func(c model.FilterCriteria) []string { return c.Severity },
	},
	{
		field:      FieldActivityName,
		comparison: ComparisonEquals,
		policy:     combineOr,
		values:     func(c model.FilterCriteria) []string { return c.ActivityName },
	},
	{
		field:      FieldActivityName,
		comparison: ComparisonNotEquals,
		policy:     combineAnd,
		values:     func(c model.FilterCriteria) []string { return c.ActivityNameExclude },
	},
}

// Build converts criteria into a filter expression. It never fails: enum
// values are expected to be validated by the flag layer.
func Build(criteria model.FilterCriteria) Expression {
	var groups []Group
	for _, d := range dimensions {
		groups = append(groups, d.groups(criteria)...)
	}

	if criteria.CreatedWithinDays > 0 {
		groups = append(groups, Group{
			DateFilters: []DatePredicate{{
				FieldName: FieldCreatedTime,
				Filter: DateMatch{DateRange: DateRange{
					Unit:  DateRangeUnitDays,
					Value: criteria.CreatedWithinDays,
				}},
			}},
		})
	}

	switch len(groups) {
	case 0:
		return Expression{}
	case 1:
		return Expression{CompositeFilters: groups}
	default:
		return Expression{CompositeOperator: OperatorAnd, CompositeFilters: groups}
	}
}

func (d dimension) groups(criteria model.FilterCriteria) []Group {
	var preds []StringPredicate
	for _, v := range d.values(criteria) {
		if v == "" {
			continue
		}
		preds = append(preds, StringPredicate{
			FieldName: d.field,
			Filter:    StringMatch{Value: v, Comparison: d.comparison},
		})
	}

	switch {
	case len(preds) == 0:
		return nil
	case d.policy == combineAnd:
		out := make([]Group, 0, len(preds))
		for _, p := range preds {
			out = append(out, Group{StringFilters: []StringPredicate{p}})
		}
		return out
	case len(preds) == 1:
		return []Group{{StringFilters: preds}}
	default:
		return []Group{{Operator: OperatorOr, StringFilters: preds}}
	}
}

// IsEmpty reports whether the expression matches every finding.
func (e Expression) IsEmpty() bool {
	return len(e.CompositeFilters) == 0
}

// JSON renders the expression in the request wire shape for diagnostics.
func (e Expression) JSON() string {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ToOcsf converts the expression into SDK filter types. An empty expression
// returns nil so the request carries no Filters at all.
func (e Expression) ToOcsf() *types.OcsfFindingFilters {
	if e.IsEmpty() {
		return nil
	}

	out := &types.OcsfFindingFilters{
		CompositeOperator: types.AllowedOperators(e.CompositeOperator),
		CompositeFilters:  make([]types.CompositeFilter, 0, len(e.CompositeFilters)),
	}
	for _, g := range e.CompositeFilters {
		cf := types.CompositeFilter{Operator: types.AllowedOperators(g.Operator)}
		for _, sp := range g.StringFilters {
			cf.StringFilters = append(cf.StringFilters, types.OcsfStringFilter{
				FieldName: types.OcsfStringField(sp.FieldName),
				Filter: &types.StringFilter{
					Value:      aws.String(sp.Filter.Value),
					Comparison: types.StringFilterComparison(sp.Filter.Comparison),
				},
			})
		}
		for _, dp := range g.DateFilters {
			cf.DateFilters = append(cf.DateFilters, types.OcsfDateFilter{
				FieldName: types.OcsfDateField(dp.FieldName),
				Filter: &types.DateFilter{
					DateRange: &types.DateRange{
						Unit:  types.DateRangeUnit(dp.Filter.DateRange.Unit),
						Value: aws.Int32(int32(dp.Filter.DateRange.Value)),
					},
				},
			})
		}
		out.CompositeFilters = append(out.CompositeFilters, cf)
	}
	return out
}
