package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/thirukguru/ocsf-export/model"
	"github.com/thirukguru/ocsf-export/service/filter"
	"github.com/thirukguru/ocsf-export/service/securityhub"
	"github.com/thirukguru/ocsf-export/service/storage"
	"github.com/thirukguru/ocsf-export/shared/spinner"
	"github.com/thirukguru/ocsf-export/shared/tables"
)

type terminalSpinner struct{}

func (terminalSpinner) Start(msg string)  { spinner.StartSpinner(msg) }
func (terminalSpinner) Update(msg string) { spinner.UpdateSpinner(msg) }
func (terminalSpinner) Stop()             { spinner.StopSpinner() }

// runExport builds the filter, retrieves every matching finding and writes
// them out. Nothing reaches the output sink unless retrieval fully succeeds.
func (a *app) runExport(ctx context.Context, flags model.Flags, log zerolog.Logger) error {
	expr := filter.Build(flags.Criteria)
	log.Info().Msgf("Filters: %s", expr.JSON())

	awsCfg, err := a.awsConfig(ctx, flags.Region, flags.Profile)
	if err != nil {
		return &securityhub.RetrievalError{Kind: securityhub.KindTransport, Message: err.Error(), Err: err}
	}

	if !flags.Verbose {
		a.spinner.Start("Retrieving Security Hub findings...")
	}
	started := time.Now()
	result, err := a.findingsService(awsCfg).GetFindings(ctx, expr, securityhub.Options{
		PageSize: flags.PageSize,
		MaxItems: flags.MaxItems,
		OnPage: func(p securityhub.PageStat) {
			log.Info().
				Int("page", p.Index).
				Int("items", p.Items).
				Int("total", p.Total).
				Msgf("Retrieved page %d: %d findings (total: %d)", p.Index, p.Items, p.Total)
			if !flags.Verbose {
				a.spinner.Update(fmt.Sprintf("Retrieved %d findings...", p.Total))
			}
		},
	})
	if !flags.Verbose {
		a.spinner.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	pages := pageRecords(result.Stats)
	if flags.Verbose {
		tables.RenderPageTable(a.stderr, pages)
	}
	log.Info().Msgf("Total findings retrieved: %d", len(result.Findings))

	if err := a.outputService.WriteFindings(result.Findings, flags.OutputFile); err != nil {
		return err
	}

	if flags.Store {
		a.recordRun(ctx, flags, log, storage.SaveRunInput{
			Region:      awsCfg.Region,
			Profile:     flags.Profile,
			Timestamp:   started,
			DurationMS:  elapsed.Milliseconds(),
			FiltersJSON: expr.JSON(),
			Total:       len(result.Findings),
			OutputPath:  flags.OutputFile,
			Version:     a.versionInfo.Version,
			Pages:       pages,
		}, awsCfg)
	}

	return nil
}

// recordRun saves export history. Findings have already been written, so a
// history failure is reported as a warning and does not fail the export.
func (a *app) recordRun(ctx context.Context, flags model.Flags, log zerolog.Logger, input storage.SaveRunInput, awsCfg aws.Config) {
	accountID, err := a.stsService(awsCfg).GetAccountID(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("unable to resolve caller account; export not recorded")
		return
	}
	input.AccountID = accountID

	store, err := a.storageService(flags.DBPath)
	if err != nil {
		log.Warn().Err(err).Msg("unable to open history database; export not recorded")
		return
	}
	defer store.Close()

	runID, err := store.SaveRun(ctx, input)
	if err != nil {
		log.Warn().Err(err).Msg("failed to record export run")
		return
	}
	log.Info().Int64("run_id", runID).Msg("Export run recorded")
}

func pageRecords(stats []securityhub.PageStat) []storage.PageRecord {
	out := make([]storage.PageRecord, 0, len(stats))
	for _, s := range stats {
		out = append(out, storage.PageRecord{Index: s.Index, Items: s.Items, Total: s.Total})
	}
	return out
}
