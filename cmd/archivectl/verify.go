package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/repository"
	"github.com/noah-isme/bizops-api/pkg/config"
	"github.com/noah-isme/bizops-api/pkg/database"
)

type relationCounter interface {
	Count(ctx context.Context, base models.BaseTable, filter models.FilterMode) (int, error)
}

type viewCheck struct {
	table     models.BaseTable
	filter    models.FilterMode
	views     int
	predicate int
}

func (c viewCheck) ok() bool { return c.views == c.predicate }

func newVerifyViewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-views",
		Short: "Check that the filtered views agree with archived_at on every table",
		Long: "Counts each v_active_* and v_archived_* view against its base table filtered on archived_at, " +
			"and checks that actives and archived rows add up to the base table.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, predicate, closeFn, err := a.openCounters(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			checks, err := compareViews(cmd.Context(), views, predicate)
			if err != nil {
				return err
			}
			return reportViewChecks(cmd.OutOrStdout(), checks)
		},
	}
}

func compareViews(ctx context.Context, views, predicate relationCounter) ([]viewCheck, error) {
	var checks []viewCheck
	for _, kind := range models.EntityKinds() {
		table, err := kind.Table()
		if err != nil {
			return nil, err
		}
		for _, filter := range []models.FilterMode{models.FilterActives, models.FilterArchived, models.FilterAll} {
			v, err := views.Count(ctx, table, filter)
			if err != nil {
				return nil, fmt.Errorf("counting %s %s through views: %w", table, filter, err)
			}
			p, err := predicate.Count(ctx, table, filter)
			if err != nil {
				return nil, fmt.Errorf("counting %s %s through predicate: %w", table, filter, err)
			}
			checks = append(checks, viewCheck{table: table, filter: filter, views: v, predicate: p})
		}
	}
	return checks, nil
}

func reportViewChecks(out io.Writer, checks []viewCheck) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tFILTER\tVIEW\tPREDICATE\tSTATUS")

	var mismatches int
	totals := map[models.BaseTable]map[models.FilterMode]int{}
	for _, c := range checks {
		status := "ok"
		if !c.ok() {
			status = "MISMATCH"
			mismatches++
		}
		if totals[c.table] == nil {
			totals[c.table] = map[models.FilterMode]int{}
		}
		totals[c.table][c.filter] = c.views
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", c.table, c.filter, c.views, c.predicate, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, kind := range models.EntityKinds() {
		table, err := kind.Table()
		if err != nil {
			return err
		}
		byFilter, ok := totals[table]
		if !ok {
			continue
		}
		if byFilter[models.FilterActives]+byFilter[models.FilterArchived] != byFilter[models.FilterAll] {
			fmt.Fprintf(out, "%s: actives + archived != all\n", table)
			mismatches++
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d view checks failed", mismatches)
	}
	fmt.Fprintln(out, "All views consistent.")
	return nil
}

func openViewCounters(ctx context.Context) (relationCounter, relationCounter, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return repository.NewListingRepository(db, true), repository.NewListingRepository(db, false), func() { _ = db.Close() }, nil
}
