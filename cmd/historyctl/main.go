// Command historyctl inspects and prunes saved designs in the history database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"luminadecor/internal/config"
	"luminadecor/internal/db"
	"luminadecor/internal/history"
	"luminadecor/models"
)

type historyStore interface {
	List(ctx context.Context, owner string) []models.HistoryItem
	Delete(ctx context.Context, owner, id string) ([]models.HistoryItem, error)
	Clear(ctx context.Context, owner string) error
}

type openStoreFunc func() (historyStore, error)

func main() {
	if err := newRootCmd(openStore).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (historyStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	database, err := db.Configure(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return history.New(database, history.Options{Limit: cfg.History.Limit, MaxBytes: cfg.History.MaxBytes})
}

func newRootCmd(open openStoreFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "historyctl",
		Short:         "Inspect and prune saved LuminaDecor designs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "list <email>",
		Short: "List the saved designs of a profile, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), store.List(cmd.Context(), args[0]))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "delete <email> <id>",
		Short: "Delete one saved design",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			remaining, err := store.Delete(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("delete %s: %w", args[1], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d designs remaining\n", len(remaining))
			return err
		},
	})

	clearCmd := &cobra.Command{
		Use:   "clear <email>",
		Short: "Delete every saved design of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("refusing to clear history of %s without --yes", args[0])
			}
			store, err := open()
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return err
		},
	}
	clearCmd.Flags().BoolP("yes", "y", false, "Confirm deleting every design")
	root.AddCommand(clearCmd)

	return root
}

func printItems(w io.Writer, items []models.HistoryItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "no saved designs")
		return err
	}
	for _, item := range items {
		recommended := ""
		if theme := item.AnalysisResult.Recommended(); theme != nil {
			recommended = theme.Name
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d themes\t%s\n",
			item.ID,
			item.Timestamp.Format("2006-01-02 15:04"),
			item.EventType,
			item.Budget,
			len(item.AnalysisResult.Themes),
			recommended,
		); err != nil {
			return err
		}
	}
	return nil
}
