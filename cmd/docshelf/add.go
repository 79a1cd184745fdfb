package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf"
	"github.com/sagarc03/docshelf/config"
)

var addCmd = &cobra.Command{
	Use:   "add [flags] <file1> [file2] ...",
	Short: "Upload local PDF files for a user",
	Long: `Upload PDF files from local paths into a user's documents.

Documents are stored under their base name, so files with the same name in
different directories overwrite each other. Files not ending in .pdf are
skipped.

Examples:
  # Add a single file
  docshelf add --user user1 /path/to/report.pdf

  # Store a single file under another name
  docshelf add --user user1 -n q3-report.pdf /path/to/report.pdf

  # Add every PDF below a directory
  docshelf add --user user1 -r /path/to/scans

  # Skip documents the user already has
  docshelf add --user user1 --no-clobber /path/to/report.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addUser      string
	addRecursive bool
	addName      string
	addNoClobber bool
	addQuiet     bool
)

func init() {
	addCmd.Flags().StringVarP(&addUser, "user", "u", "", "owner of the documents")
	addCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "recursively add directories")
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "document name for a single file (default: the file's base name)")
	addCmd.Flags().BoolVar(&addNoClobber, "no-clobber", false, "skip existing documents instead of overwriting")
	addCmd.Flags().BoolVarP(&addQuiet, "quiet", "q", false, "suppress per-file output")
	_ = addCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(addCmd)
}

// fileEntry represents a file to be added with its source path and document name.
type fileEntry struct {
	sourcePath string
	name       string
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	// Collect files from all arguments
	var files []fileEntry
	for _, arg := range args {
		entries, collectErr := collectFiles(arg, addRecursive)
		if collectErr != nil {
			return fmt.Errorf("collect files from %s: %w", arg, collectErr)
		}
		files = append(files, entries...)
	}

	if len(files) == 0 {
		slog.Info("no files to add")
		return nil
	}

	if addName != "" {
		files, err = renameSingle(files, addName)
		if err != nil {
			return err
		}
	}

	var existing []string
	if addNoClobber {
		existing, err = store.List(ctx, addUser)
		if err != nil {
			return fmt.Errorf("list documents of %s: %w", addUser, err)
		}
	}

	added := 0
	skipped := 0

	for _, entry := range files {
		if addNoClobber && slices.Contains(existing, entry.name) {
			skipped++
			if !addQuiet {
				slog.Info("skipped (exists)", "name", entry.name)
			}
			continue
		}

		if err := addFile(cmd, store, entry); err != nil {
			return err
		}

		added++
		if !addQuiet {
			slog.Info("added", "user", addUser, "name", entry.name)
		}
	}

	slog.Info("add complete", "added", added, "skipped", skipped)
	return nil
}

func addFile(cmd *cobra.Command, store *docshelf.DocumentStore, entry fileEntry) error {
	f, err := os.Open(entry.sourcePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", entry.sourcePath, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", entry.sourcePath, err)
	}

	if _, err := store.Put(cmd.Context(), addUser, entry.name, f, info.Size()); err != nil {
		return fmt.Errorf("add %s: %w", entry.name, err)
	}
	return nil
}

// renameSingle stores the only collected file under name. It fails when more
// than one file was collected or name is not a valid PDF document name.
func renameSingle(files []fileEntry, name string) ([]fileEntry, error) {
	if len(files) != 1 {
		return nil, fmt.Errorf("--name needs exactly one file, got %d", len(files))
	}
	if !docshelf.IsValidFilename(name) || !docshelf.HasPDFExtension(name) {
		return nil, fmt.Errorf("invalid document name %q: %w", name, docshelf.ErrInvalidInput)
	}
	return []fileEntry{{sourcePath: files[0].sourcePath, name: name}}, nil
}

// collectFiles gathers PDF files from a path, optionally recursively.
func collectFiles(path string, recursive bool) ([]fileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		name := filepath.Base(path)
		if !docshelf.HasPDFExtension(name) || !docshelf.IsValidFilename(name) {
			return nil, fmt.Errorf("%s is not a PDF file", path)
		}
		return []fileEntry{{sourcePath: path, name: name}}, nil
	}

	if !recursive {
		return nil, fmt.Errorf("%s is a directory (use -r to add recursively)", path)
	}

	var entries []fileEntry
	walkErr := filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if !docshelf.HasPDFExtension(name) || !docshelf.IsValidFilename(name) {
			slog.Debug("skipping non-PDF file", "path", walkPath)
			return nil
		}

		entries = append(entries, fileEntry{sourcePath: walkPath, name: name})
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return entries, nil
}
