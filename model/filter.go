package model

// Allowed values for the enumerated finding filters.
var (
	StatusValues       = []string{"New", "In Progress", "On Hold", "Suppressed", "Resolved", "Archived", "Deleted", "Unknown", "Other"}
	SeverityValues     = []string{"Fatal", "Critical", "High", "Medium", "Low", "Informational", "Unknown", "Other"}
	ActivityNameValues = []string{"Create", "Update", "Close", "Unknown", "Other"}
)

// FilterCriteria holds the user-selected finding filters. Zero values mean
// "no constraint" for that dimension.
type FilterCriteria struct {
	Account             string
	Status              []string
	Severity            []string
	ActivityName        []string
	ActivityNameExclude []string
	CreatedWithinDays   int
}
