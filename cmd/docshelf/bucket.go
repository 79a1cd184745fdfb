package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf/config"
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage the document bucket",
}

var bucketEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the bucket if it does not exist",
	Args:  cobra.NoArgs,
	RunE:  runBucketEnsure,
}

func init() {
	bucketCmd.AddCommand(bucketEnsureCmd)
	rootCmd.AddCommand(bucketCmd)
}

func runBucketEnsure(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	store, closeStore, err := openDocumentStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ok, err := store.EnsureBucket(cmd.Context())
	if !ok {
		return fmt.Errorf("ensure bucket %s: %w", store.Bucket(), err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bucket %s is ready\n", store.Bucket())
	return nil
}
