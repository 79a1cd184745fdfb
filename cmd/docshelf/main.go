package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "docshelf",
	Short:   "Share PDF documents kept in an object storage bucket",
	Long: `docshelf is a small web application where signed-in users upload,
list, download and delete PDF files. Documents live in a single bucket on
S3, MinIO or the local filesystem, namespaced by user.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			files = append(files, configFile)
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("driver", "", "storage driver: s3, minio, filesystem (default: s3, env: DOCSHELF_STORAGE_DRIVER)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket name (default: apt-pdf-browser, env: DOCSHELF_STORAGE_BUCKET)")
	rootCmd.PersistentFlags().String("region", "", "bucket region (default: us-east-1, env: DOCSHELF_STORAGE_REGION)")
	rootCmd.PersistentFlags().String("endpoint", "", "S3/MinIO endpoint URL (env: DOCSHELF_STORAGE_ENDPOINT)")
	rootCmd.PersistentFlags().String("storage-path", "", "root directory for the filesystem driver (default: ./storage, env: DOCSHELF_STORAGE_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
