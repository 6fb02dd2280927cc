package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrec/internal/models"
)

type historyRow struct {
	Kind        models.HistoryKind `json:"kind"`
	Query       string             `json:"query"`
	Selected    string             `json:"selected,omitempty"`
	ResultCount int                `json:"result_count"`
	CreatedAt   time.Time          `json:"created_at"`
}

// HistoryList prints recent searches, selections and recommendations, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	entries, err := r.history.List(map[string]any{
		"kind":  cmd.String("kind"),
		"limit": cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]historyRow, len(entries))
		for i, e := range entries {
			rows[i] = historyRow{
				Kind:        e.Kind(),
				Query:       e.Query(),
				Selected:    e.Selected(),
				ResultCount: e.ResultCount(),
				CreatedAt:   e.CreatedAt(),
			}
		}
		return r.writeJSON(rows, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No history yet\n")
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s  %s", e.CreatedAt().Local().Format("2006-01-02 15:04"), e.Kind(), e.Query())
		if e.Selected() != "" {
			line += " → " + e.Selected()
		}
		r.writePlain("%s (%d results)\n", line, e.ResultCount())
	}
	return nil
}

// HistoryClear deletes all history entries.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDB(); err != nil {
		return err
	}

	n, err := r.history.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("history cleared", "entries", n)
	return r.writePlain("✓ Removed %d history entries\n", n)
}
