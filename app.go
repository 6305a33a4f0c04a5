// Package main is the entry point for the ocsf-export application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/thirukguru/ocsf-export/model"
	awsconfig "github.com/thirukguru/ocsf-export/service/aws_config"
	"github.com/thirukguru/ocsf-export/service/config"
	"github.com/thirukguru/ocsf-export/service/flag"
	"github.com/thirukguru/ocsf-export/service/output"
	"github.com/thirukguru/ocsf-export/service/securityhub"
	"github.com/thirukguru/ocsf-export/service/storage"
	awssts "github.com/thirukguru/ocsf-export/service/sts"
	"github.com/thirukguru/ocsf-export/shared/logging"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func run() error {
	return newApp(os.Stdout, os.Stderr).run(context.Background(), os.Args[1:])
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ve *flag.ValidationError
	if errors.As(err, &ve) {
		return exitValidation
	}
	return exitFailure
}

// app holds the collaborators of one invocation. Constructors are fields so
// tests can replace anything that talks to AWS or the filesystem.
type app struct {
	stdout      io.Writer
	stderr      io.Writer
	color       bool
	versionInfo model.VersionInfo

	flagService     flag.Service
	awsConfig       func(ctx context.Context, region, profile string) (aws.Config, error)
	findingsService func(cfg aws.Config) securityhub.Service
	stsService      func(cfg aws.Config) awssts.Service
	storageService  func(dbPath string) (storage.Service, error)
	outputService   output.Service
	spinner         progress
}

// progress is the interactive indicator shown while pages are fetched.
type progress interface {
	Start(msg string)
	Update(msg string)
	Stop()
}

func newApp(stdout, stderr io.Writer) *app {
	color := false
	if f, ok := stderr.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &app{
		stdout:          stdout,
		stderr:          stderr,
		color:           color,
		versionInfo:     model.VersionInfo{Version: version, Commit: commit, Date: date},
		flagService:     flag.NewService(config.NewService()),
		awsConfig:       awsconfig.NewService().GetAWSCfg,
		findingsService: securityhub.NewService,
		stsService:      awssts.NewService,
		storageService:  storage.NewService,
		outputService:   output.NewService(stdout),
		spinner:         terminalSpinner{},
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "history", "db":
			return a.runStorageCommand(ctx, args[0], args[1:])
		}
	}

	flags, err := a.flagService.GetParsedFlags()
	if err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintf(a.stdout, "ocsf-export %s (commit %s, built %s)\n", a.versionInfo.Version, a.versionInfo.Commit, a.versionInfo.Date)
		return nil
	}

	return a.runExport(ctx, flags, a.logger(flags.Verbose))
}

func (a *app) logger(verbose bool) zerolog.Logger {
	return logging.New(a.stderr, verbose, a.color)
}
