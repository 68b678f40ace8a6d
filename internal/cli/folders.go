package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/localfs"
)

// newMkdirCmd creates a folder entry.
func newMkdirCmd() *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, cache, err := newAPIClient()
			if err != nil {
				return err
			}

			entry, err := client.CreateFolder(cmd.Context(), args[0], parentID)
			if err != nil {
				return fmt.Errorf("failed to create folder: %w", err)
			}

			cache.Invalidate(api.FilesPath, parentID)
			logger.Info().Str("id", entry.ID).Str("name", entry.Name).Msg("folder created")
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "folder", "", "Parent folder ID")
	return cmd
}

// newUploadDirCmd uploads a directory tree, preserving relative paths.
func newUploadDirCmd() *cobra.Command {
	var (
		folderID      string
		includeHidden bool
	)

	cmd := &cobra.Command{
		Use:   "upload-dir <directory>",
		Short: "Upload a directory, preserving its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := localfs.CollectFolder(args[0], localfs.WalkOptions{
				IncludeHidden: includeHidden,
			})
			if err != nil {
				return err
			}

			if len(selection) == 0 {
				logger.Warn().Str("dir", args[0]).Msg("directory contains no files, nothing to upload")
				return nil
			}

			return runUpload(cmd, selection, folderID, true)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Destination folder ID")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Include hidden files and directories")
	return cmd
}
