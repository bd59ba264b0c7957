package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ah-its-andy/reformed/internal/config"
	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(load func() (*config.Config, error)) *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cfg.HistoryEnabled() {
				return errors.New("conversion history is disabled (set history.db_path or REFORMED_DB_PATH)")
			}
			store, err := db.Open(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, total, err := store.List(cmd.Context(), db.Filter{Status: db.Status(status), Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No conversions recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(historyColumns, historyRows(rows, time.Now())))
			fmt.Fprintf(out, "%d of %d conversions\n", len(rows), total)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only show success or failed conversions")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of conversions to show")
	return cmd
}

func historyRows(recs []db.ConversionRecord, now time.Time) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		out := "-"
		if r.Status == db.StatusSuccess {
			out = humanize.IBytes(uint64(r.OutputBytes))
		}
		rows = append(rows, []string{
			id,
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			r.From + " -> " + r.To,
			r.FileName,
			string(r.Status),
			humanize.IBytes(uint64(r.InputBytes)),
			out,
			(time.Duration(r.DurationMs) * time.Millisecond).String(),
		})
	}
	return rows
}
