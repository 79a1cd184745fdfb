package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf"
	"github.com/sagarc03/docshelf/config"
)

var removeCmd = &cobra.Command{
	Use:   "remove [flags] <name1> [name2] ...",
	Short: "Delete documents of a user",
	Long: `Delete documents from a user's shelf.

Examples:
  # Remove a single document
  docshelf remove --user user1 report.pdf

  # Remove several documents
  docshelf remove --user user1 a.pdf b.pdf

  # Remove every document of the user
  docshelf remove --user user1 --all`,
	RunE: runRemove,
}

var (
	removeUser  string
	removeAll   bool
	removeQuiet bool
)

func init() {
	removeCmd.Flags().StringVarP(&removeUser, "user", "u", "", "owner of the documents")
	removeCmd.Flags().BoolVar(&removeAll, "all", false, "remove every document of the user")
	removeCmd.Flags().BoolVarP(&removeQuiet, "quiet", "q", false, "suppress per-file output")
	_ = removeCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if removeAll == (len(args) > 0) {
		return errors.New("pass either document names or --all")
	}

	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	store, closeStore, err := openDocumentStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	names := args
	if removeAll {
		names, err = store.List(ctx, removeUser)
		if err != nil {
			return fmt.Errorf("list documents of %s: %w", removeUser, err)
		}
	}

	removed, notFound, err := removeDocuments(ctx, store, removeUser, names)
	if err != nil {
		return err
	}

	slog.Info("remove complete", "removed", removed, "not_found", notFound)
	return nil
}

// removeDocuments deletes names from the user's documents. Missing documents
// are counted, not treated as failures.
func removeDocuments(ctx context.Context, store *docshelf.DocumentStore, user string, names []string) (removed, notFound int, err error) {
	for _, name := range names {
		deleteErr := store.Delete(ctx, user, name)
		if errors.Is(deleteErr, docshelf.ErrNotFound) {
			notFound++
			if !removeQuiet {
				slog.Warn("not found", "user", user, "name", name)
			}
			continue
		}
		if deleteErr != nil {
			return removed, notFound, fmt.Errorf("remove %s: %w", name, deleteErr)
		}
		removed++
		if !removeQuiet {
			slog.Info("removed", "user", user, "name", name)
		}
	}

	return removed, notFound, nil
}
