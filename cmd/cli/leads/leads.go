// Package leads inspects the lead journal kept next to the session store.
package leads

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/repositories"
	"github.com/alphafounders/site/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "leads",
	Title: "Lead journal",
}

func init() {
	list.Flags().String("db", "", "sqlite database url (default $SITE_SQLITE_URL)")
	list.Flags().String("status", "", "only show deliveries that were delivered, failed or skipped")
	list.Flags().Int("limit", 20, "number of entries") //nolint:mnd // one screen
	Command.AddCommand(list)
}

var Command = &cobra.Command{
	Use:     "leads",
	GroupID: "leads",
	Short:   "Inspect captured leads",
}

var list = &cobra.Command{
	Use:   "list",
	Short: "List recent lead deliveries",
	Long:  `Lists the newest lead deliveries. Failed deliveries keep the error so they can be re-entered by hand.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		url, _ := flags.GetString("db")
		if url == "" {
			url = os.Getenv("SITE_SQLITE_URL")
		}
		if url == "" {
			return errors.New("no database, set --db or SITE_SQLITE_URL")
		}
		status, _ := flags.GetString("status")
		limit, err := flags.GetInt("limit")
		if err != nil {
			return errors.Wrap(err, "invalid limit flag")
		}

		ctx := cmd.Context()
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
		db, err := sqlite.NewDatabase(ctx, url, logger)
		if err != nil {
			return errors.Wrap(err, "open database")
		}
		defer func() {
			_ = db.Close()
		}()

		entries, err := repositories.NewLeadJournal(db, logger).Recent(ctx, leads.Outcome(status), limit)
		if err != nil {
			return errors.Wrap(err, "list journal")
		}
		return printEntries(cmd.OutOrStdout(), entries)
	},
}

func printEntries(out io.Writer, entries []repositories.JournalEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(w, "CREATED\tFORM\tEMAIL\tSTATUS\tSUBMISSION\tERROR")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Created, e.FormType, e.Email, e.Status, e.SubmissionID, e.Error)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "flush table")
	}
	return nil
}
