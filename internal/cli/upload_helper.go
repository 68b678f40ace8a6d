package cli

import (
	"github.com/spf13/cobra"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/notify"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/progress"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/upload"
)

// runUpload wires a selection through the upload coordinator with a CLI
// progress bar and outcome notifications.
func runUpload(cmd *cobra.Command, selection upload.FileSelection, folderID string, folder bool) error {
	client, cfg, bus, cache, err := newAPIClient()
	if err != nil {
		return err
	}
	defer bus.Close()

	executor := upload.NewExecutor(client.RawClient(), client.BaseURL(), client.Session(), logger)
	notifier := notify.NewDesktopNotifier(cfg.Notifications, logger)
	coordinator := upload.NewCoordinator(executor, cache, notifier, bus, logger)

	bar := progress.NewPercentProgress()
	started := false

	req := upload.Request{
		Selection: selection,
		ParentID:  folderID,
		Folder:    folder,
		OnProgress: func(s upload.ProgressState) {
			if !started {
				bar.Start(100, s.Label)
				started = true
			}
			bar.SetDescription(s.Label)
			bar.Update(int64(s.Percent))
		},
	}

	if err := coordinator.Start(cmd.Context(), req); err != nil {
		bar.Error(err)
		return err
	}
	if started {
		bar.Finish()
	}
	return nil
}
