package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lexhook/internal/config"
	"lexhook/internal/journal"
)

func newJournalCmd() *cobra.Command {
	var userID string
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recent fulfillments from the journal database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return fmt.Errorf("DB_DSN is required")
			}

			store, err := journal.New(cmd.Context(), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FULFILLED\tUSER\tINTENT\tPRICE\tRESERVATION")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					rec.FulfilledAt.In(cfg.Location).Format(time.DateTime),
					rec.UserID, rec.Intent, rec.Price, rec.Reservation)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "only show this user's fulfillments")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rows")
	return cmd
}
