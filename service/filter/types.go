package filter

// Comparison is the string comparison applied by a predicate.
type Comparison string

// Operator combines sibling filters.
type Operator string

const (
	ComparisonEquals    Comparison = "EQUALS"
	ComparisonNotEquals Comparison = "NOT_EQUALS"

	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"

	// DateRangeUnitDays is the only lookback unit emitted.
	DateRangeUnitDays = "DAYS"
)

// OCSF field names used by the exporter.
const (
	FieldAccountUID   = "cloud.account.uid"
	FieldStatus       = "status"
	FieldSeverity     = "severity"
	FieldActivityName = "activity_name"
	FieldCreatedTime  = "finding_info.created_time_dt"
)

// StringPredicate compares one OCSF string field against a literal.
type StringPredicate struct {
	FieldName string      `json:"FieldName"`
	Filter    StringMatch `json:"Filter"`
}

// StringMatch is the value half of a StringPredicate.
type StringMatch struct {
	Value      string     `json:"Value"`
	Comparison Comparison `json:"Comparison"`
}

// DatePredicate restricts an OCSF date field to a lookback window.
type DatePredicate struct {
	FieldName string    `json:"FieldName"`
	Filter    DateMatch `json:"Filter"`
}

// DateMatch wraps the relative date range.
type DateMatch struct {
	DateRange DateRange `json:"DateRange"`
}

// DateRange is a lookback of Value units ending now.
type DateRange struct {
	Unit  string `json:"Unit"`
	Value int    `json:"Value"`
}

// Group is one entry of CompositeFilters. An empty Operator means the group
// holds a single predicate.
type Group struct {
	Operator      Operator          `json:"Operator,omitempty"`
	StringFilters []StringPredicate `json:"StringFilters,omitempty"`
	DateFilters   []DatePredicate   `json:"DateFilters,omitempty"`
}

// Expression is the composite finding filter sent with every page request.
// The zero value matches all findings.
type Expression struct {
	CompositeOperator Operator `json:"CompositeOperator,omitempty"`
	CompositeFilters  []Group  `json:"CompositeFilters,omitempty"`
}

// combinePolicy says how several predicates of one dimension are joined.
type combinePolicy int

const (
	// combineOr wraps all predicates of the dimension in a single OR group.
	combineOr combinePolicy = iota
	// combineAnd emits one group per predicate so the top-level AND joins them.
	combineAnd
)
