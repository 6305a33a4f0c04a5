package model

// Flags represents the command line flags.
type Flags struct {
	Profile    string
	Region     string
	Version    bool
	Verbose    bool
	OutputFile string
	PageSize   int
	MaxItems   int
	Store      bool
	DBPath     string
	ConfigPath string
	Criteria   FilterCriteria
}
