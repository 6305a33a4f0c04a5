package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/thirukguru/ocsf-export/service/flag"
	"github.com/thirukguru/ocsf-export/shared/tables"
)

func (a *app) runStorageCommand(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "db":
		return a.runDBCommand(ctx, args)
	case "history":
		return a.runHistoryCommand(ctx, args)
	default:
		return &flag.ValidationError{Err: fmt.Errorf("unsupported command: %s", cmd)}
	}
}

func (a *app) runDBCommand(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 90, "Purge export runs older than N days")
	if err := fs.Parse(args); err != nil {
		return &flag.ValidationError{Err: err}
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return &flag.ValidationError{Err: fmt.Errorf("usage: ocsf-export db <vacuum|purge> [--db-path ...]")}
	}

	sub := rest[0]
	if sub != "vacuum" && sub != "purge" {
		return &flag.ValidationError{Err: fmt.Errorf("unsupported db command: %s", sub)}
	}

	store, err := a.storageService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if sub == "vacuum" {
		return store.Vacuum(ctx)
	}
	count, err := store.PurgeOlderThan(ctx, *olderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Purged %d export runs\n", count)
	return nil
}

func (a *app) runHistoryCommand(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dbPath := fs.String("db-path", "", "SQLite database path")
	accountID := fs.String("account", "", "AWS account ID filter")
	limit := fs.Int("limit", 20, "Number of runs to list")
	if err := fs.Parse(args); err != nil {
		return &flag.ValidationError{Err: err}
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return &flag.ValidationError{Err: fmt.Errorf("usage: ocsf-export history <list|show>")}
	}

	var runID int64
	switch rest[0] {
	case "list":
	case "show":
		if len(rest) < 2 {
			return &flag.ValidationError{Err: fmt.Errorf("usage: ocsf-export history show <run-id>")}
		}
		id, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return &flag.ValidationError{Err: fmt.Errorf("invalid run id %q: %w", rest[1], err)}
		}
		runID = id
	default:
		return &flag.ValidationError{Err: fmt.Errorf("unsupported history command: %s", rest[0])}
	}

	store, err := a.storageService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if rest[0] == "list" {
		runs, err := store.GetRecentRuns(ctx, *accountID, *limit)
		if err != nil {
			return err
		}
		tables.RenderHistoryTable(a.stdout, runs)
		return nil
	}

	detail, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(b))
	return nil
}
