package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/localfs"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/progress"
)

// newLsCmd lists a folder, going through the listing cache.
func newLsCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "ls [folder-id]",
		Short: "List files and folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, cache, err := newAPIClient()
			if err != nil {
				return err
			}

			folderID := ""
			if len(args) == 1 {
				folderID = args[0]
			}

			entries, ok := cache.Get(api.FilesPath, folderID)
			if !ok || noCache {
				entries, err = client.ListFolder(cmd.Context(), folderID)
				if err != nil {
					return fmt.Errorf("failed to list folder: %w", err)
				}
				cache.Put(api.FilesPath, folderID, entries)
			}

			if len(entries) == 0 {
				fmt.Println("(empty)")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tMODIFIED")
			for _, e := range entries {
				size := humanize.Bytes(uint64(e.Size))
				kind := e.MimeType
				if e.IsFolder() {
					size = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Name, kind, size, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the listing cache")
	return cmd
}

// newUploadCmd uploads independently selected files (flat mode).
func newUploadCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandGlobPatterns(args)
			if err != nil {
				return err
			}

			selection, err := localfs.CollectFiles(paths)
			if err != nil {
				return err
			}

			return runUpload(cmd, selection, folderID, false)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Destination folder ID")
	return cmd
}

// newRmCmd deletes a file or folder.
func newRmCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, cache, err := newAPIClient()
			if err != nil {
				return err
			}

			if err := client.DeleteFile(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete %s: %w", args[0], err)
			}

			cache.Invalidate(api.FilesPath, folderID)
			logger.Info().Str("id", args[0]).Msg("deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Folder the entry lives in (for cache invalidation)")
	return cmd
}

// newDownloadCmd streams a file to disk.
func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <id> <dest>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, _, err := newAPIClient()
			if err != nil {
				return err
			}

			dest := args[1]
			out, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", dest, err)
			}
			defer out.Close()

			bar := progress.NewCLIProgress()
			started := false
			err = client.DownloadFile(cmd.Context(), args[0], out, func(current, total int64) {
				if !started {
					bar.Start(total, filepath.Base(dest))
					started = true
				}
				bar.Update(current)
			})
			if err != nil {
				bar.Error(err)
				os.Remove(dest)
				return fmt.Errorf("download failed: %w", err)
			}
			bar.Finish()

			logger.Info().Str("dest", dest).Msg("download complete")
			return nil
		},
	}
	return cmd
}

// expandGlobPatterns expands glob patterns like *.csv, even when quoted.
// Returns a deduplicated list of absolute file paths.
func expandGlobPatterns(patterns []string) ([]string, error) {
	var expanded []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		hasGlob := strings.ContainsAny(pattern, "*?[]")

		if hasGlob {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match pattern: %s", pattern)
			}
			for _, match := range matches {
				absPath, err := filepath.Abs(match)
				if err != nil {
					return nil, fmt.Errorf("failed to get absolute path for %s: %w", match, err)
				}
				if !seen[absPath] {
					expanded = append(expanded, absPath)
					seen[absPath] = true
				}
			}
		} else {
			absPath, err := filepath.Abs(pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to get absolute path for %s: %w", pattern, err)
			}
			if !seen[absPath] {
				expanded = append(expanded, absPath)
				seen[absPath] = true
			}
		}
	}

	return expanded, nil
}
