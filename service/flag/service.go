// Package flag parses and validates the exporter command line.
package flag

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/thirukguru/ocsf-export/model"
	"github.com/thirukguru/ocsf-export/service/config"
	"github.com/thirukguru/ocsf-export/service/securityhub"
)

// NewService creates a new flag service.
func NewService(configService config.Service) Service {
	return &service{configService: configService}
}

// GetParsedFlags parses, validates and returns the command-line flags, filling
// unset options from the config file.
func (s *service) GetParsedFlags() (model.Flags, error) {
	fs := pflag.CommandLine
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Exports findings from Security Hub in OCSF format. Exports all findings by default.\n"+
			"Filter findings with the program options.\n\nUsage:\n  %s [flags]\n  %s history <list|show>\n  %s db <vacuum|purge>\n\nFlags:\n",
			fs.Name(), fs.Name(), fs.Name())
		fs.PrintDefaults()
	}

	profile := fs.StringP("profile", "p", "", "AWS profile to use")
	region := fs.StringP("region", "r", "", "AWS region to use")
	account := fs.String("account", "", "Filter by AWS account ID")
	status := fs.StringArray("status", nil, "Filter by finding status, e.g. New, 'In Progress', Suppressed, Resolved; can specify multiple times for OR logic")
	severity := fs.StringArray("severity", nil, "Filter by severity; can specify multiple times for OR logic")
	createdDaysAgo := fs.Int("created-days-ago", 0, "Filter findings created within the last N days, e.g. 30")
	activityName := fs.StringArray("activity-name", nil, "Filter by activity name, e.g. Create, Update; can specify multiple times for OR logic")
	activityNameNot := fs.StringArray("activity-name-not", nil, "Exclude findings with this activity name, e.g. Close; can specify multiple times for NOR logic")
	verbose := fs.BoolP("verbose", "v", false, "Enable verbose output (show filters and progress information)")
	version := fs.Bool("version", false, "Show version information")
	outputFile := fs.StringP("output-file", "f", "", "Write findings to this file instead of stdout")
	pageSize := fs.Int("page-size", securityhub.DefaultPageSize, "Findings requested per page")
	maxItems := fs.Int("max-items", securityhub.DefaultMaxItems, "Maximum findings to export in total")
	store := fs.Bool("store", false, "Record the export run in the local SQLite history")
	dbPath := fs.String("db-path", "", "Custom SQLite database path (default ~/.ocsf-export/history.db)")
	configPath := fs.String("config-path", "", "Path to config file (default ~/.ocsf-export/config.yaml)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return model.Flags{}, &ValidationError{Err: err}
	}
	if rest := fs.Args(); len(rest) > 0 {
		return model.Flags{}, &ValidationError{Err: fmt.Errorf("unexpected argument: %s", rest[0])}
	}

	flags := model.Flags{
		Profile:    *profile,
		Region:     *region,
		Version:    *version,
		Verbose:    *verbose,
		OutputFile: *outputFile,
		PageSize:   *pageSize,
		MaxItems:   *maxItems,
		Store:      *store,
		DBPath:     *dbPath,
		ConfigPath: *configPath,
		Criteria: model.FilterCriteria{
			Account:             strings.TrimSpace(*account),
			Status:              *status,
			Severity:            *severity,
			ActivityName:        *activityName,
			ActivityNameExclude: *activityNameNot,
			CreatedWithinDays:   *createdDaysAgo,
		},
	}

	if flags.Version {
		return flags, nil
	}

	if s.configService != nil {
		fileCfg, err := s.configService.Load(flags.ConfigPath)
		if err != nil {
			return model.Flags{}, &ValidationError{Err: err}
		}
		applyFileConfig(&flags, fileCfg, fs.Changed)
	}

	if err := validate(flags); err != nil {
		return model.Flags{}, &ValidationError{Err: err}
	}
	return flags, nil
}

func applyFileConfig(flags *model.Flags, cfg *config.FileConfig, changed func(string) bool) {
	if cfg == nil {
		return
	}
	if !changed("profile") && cfg.Profile != "" {
		flags.Profile = cfg.Profile
	}
	if !changed("region") && cfg.Region != "" {
		flags.Region = cfg.Region
	}
	if !changed("page-size") && cfg.PageSize > 0 {
		flags.PageSize = cfg.PageSize
	}
	if !changed("max-items") && cfg.MaxItems > 0 {
		flags.MaxItems = cfg.MaxItems
	}
	if !changed("output-file") && cfg.OutputFile != "" {
		flags.OutputFile = cfg.OutputFile
	}
	if !changed("store") && cfg.Store {
		flags.Store = true
	}
	if !changed("db-path") && cfg.DBPath != "" {
		flags.DBPath = cfg.DBPath
	}
	if !changed("verbose") && cfg.Verbose {
		flags.Verbose = true
	}
}

func validate(flags model.Flags) error {
	c := flags.Criteria
	if err := validateChoices("status", c.Status, model.StatusValues); err != nil {
		return err
	}
	if err := validateChoices("severity", c.Severity, model.SeverityValues); err != nil {
		return err
	}
	if err := validateChoices("activity-name", c.ActivityName, model.ActivityNameValues); err != nil {
		return err
	}
	if err := validateChoices("activity-name-not", c.ActivityNameExclude, model.ActivityNameValues); err != nil {
		return err
	}
	if c.CreatedWithinDays < 0 {
		return fmt.Errorf("invalid value %d for --created-days-ago: must be a positive number of days", c.CreatedWithinDays)
	}
	if flags.PageSize <= 0 {
		return fmt.Errorf("invalid value %d for --page-size: must be greater than 0", flags.PageSize)
	}
	if flags.MaxItems <= 0 {
		return fmt.Errorf("invalid value %d for --max-items: must be greater than 0", flags.MaxItems)
	}
	return nil
}

func validateChoices(name string, values, allowed []string) error {
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("invalid choice %q for --%s (choose from %s)", v, name, quoteAll(allowed))
		}
	}
	return nil
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("'%s'", v)
	}
	return strings.Join(quoted, ", ")
}
