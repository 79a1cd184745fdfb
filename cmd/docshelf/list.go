package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf/config"
)

var listCmd = &cobra.Command{
	Use:   "list --user <name>",
	Short: "List the documents of a user",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listUser string

func init() {
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "owner of the documents")
	_ = listCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	store, closeStore, err := openDocumentStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	names, err := store.List(cmd.Context(), listUser)
	if err != nil {
		return fmt.Errorf("list documents of %s: %w", listUser, err)
	}

	for _, name := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
