package upload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/events"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/logging"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/notify"
)

// ErrTransferBusy is returned when Start is called while a transfer is
// already in flight. At most one transfer runs per coordinator; callers
// re-invoke after the active transfer resolves.
var ErrTransferBusy = errors.New("a transfer is already in progress")

// ProgressState is the observable state of the active transfer. Owned
// exclusively by the Coordinator; observers receive value snapshots.
type ProgressState struct {
	Active           bool
	Percent          float64 // 0 to 100
	Label            string
	TotalItems       int
	CurrentItemIndex int // in [0, TotalItems]
}

// ListingInvalidator invalidates a cached folder listing after a transfer
// changes the folder's contents. Implemented by state.ListingCache.
type ListingInvalidator interface {
	Invalidate(endpoint, folderID string)
}

// Request describes one transfer: the selection, the destination folder,
// and the mode. OnProgress, if set, observes every state change of this
// transfer.
type Request struct {
	Selection  FileSelection
	ParentID   string
	Folder     bool
	OnProgress func(ProgressState)
}

// Coordinator drives the upload pipeline: payload assembly, the transfer
// itself, progress publication, and terminal effects (cache invalidation,
// outcome notification).
type Coordinator struct {
	executor *Executor
	cache    ListingInvalidator
	notifier notify.OutcomeNotifier
	bus      *events.Bus
	logger   *logging.Logger

	mu    sync.Mutex
	state ProgressState
}

// NewCoordinator creates an upload coordinator. cache, notifier, and bus
// may be nil; the corresponding terminal effect is then skipped.
func NewCoordinator(executor *Executor, cache ListingInvalidator, notifier notify.OutcomeNotifier, bus *events.Bus, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return &Coordinator{
		executor: executor,
		cache:    cache,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
	}
}

// Progress returns a snapshot of the current progress state.
func (c *Coordinator) Progress() ProgressState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start runs one transfer to its terminal outcome.
//
// An empty selection is a silent no-op. A transfer already in flight is
// rejected with ErrTransferBusy. All other failures are absorbed at this
// boundary: progress state resets to idle, one notification is emitted,
// and the terminal error is returned so CLI callers can set an exit code.
// On success the listing for (files endpoint, ParentID) is invalidated
// exactly once.
func (c *Coordinator) Start(ctx context.Context, req Request) error {
	if len(req.Selection) == 0 {
		return nil
	}

	c.mu.Lock()
	if c.state.Active {
		c.mu.Unlock()
		return ErrTransferBusy
	}
	c.state = ProgressState{
		Active:     true,
		Percent:    0,
		TotalItems: len(req.Selection),
	}
	c.state.Label = c.label(req, 0)
	c.mu.Unlock()

	transferID := uuid.NewString()
	err := c.run(ctx, transferID, req)

	label := c.Progress().Label
	c.reset()
	c.publishOutcome(transferID, label, req, err)
	return err
}

// run builds the payload and executes the transfer, updating progress
// state from the executor's byte-level events.
func (c *Coordinator) run(ctx context.Context, transferID string, req Request) error {
	payload, err := c.build(req)
	if err != nil {
		// Builder failures never reach the network.
		return err
	}

	onProgress := func(percent float64, itemIndex int) {
		c.mu.Lock()
		c.state.Percent = percent
		c.state.CurrentItemIndex = itemIndex
		c.state.Label = c.label(req, percent)
		snapshot := c.state
		c.mu.Unlock()

		if req.OnProgress != nil {
			req.OnProgress(snapshot)
		}
		if c.bus != nil {
			c.bus.PublishUploadProgress(transferID, snapshot.Label, percent, itemIndex, snapshot.TotalItems)
		}
	}

	return c.executor.Do(ctx, payload, onProgress)
}

func (c *Coordinator) build(req Request) (*TransferPayload, error) {
	if req.Folder {
		return BuildFolderPayload(req.Selection, req.ParentID)
	}
	return BuildFlatPayload(req.Selection, req.ParentID)
}

// label derives the display label for the transfer.
//   - folder mode: "<folderName> (<percent>%)", updated per progress event
//   - single file: the file's display name
//   - multiple files: "Uploading N files"
func (c *Coordinator) label(req Request, percent float64) string {
	if req.Folder {
		name := firstSegment(req.Selection[0].RelPath)
		return fmt.Sprintf("%s (%d%%)", name, int(math.Floor(percent)))
	}
	if len(req.Selection) == 1 {
		return req.Selection[0].Name
	}
	return fmt.Sprintf("Uploading %d files", len(req.Selection))
}

// reset returns the progress state to idle. No intermediate state persists
// across transfers.
func (c *Coordinator) reset() {
	c.mu.Lock()
	c.state = ProgressState{}
	c.mu.Unlock()
}

// publishOutcome applies the terminal effects for one transfer.
func (c *Coordinator) publishOutcome(transferID, label string, req Request, err error) {
	if err == nil {
		if c.cache != nil {
			c.cache.Invalidate(api.FilesPath, req.ParentID)
		}
		c.logger.Info().Str("label", label).Int("files", len(req.Selection)).Msg("upload complete")
		if c.notifier != nil {
			c.notifier.Notify(notify.KindSuccess, fmt.Sprintf("Upload complete: %s", label))
		}
	} else {
		c.logger.Error().Err(err).Str("label", label).Msg("upload failed")
		if c.notifier != nil {
			c.notifier.Notify(notify.KindFailure, fmt.Sprintf("Upload failed: %v", err))
		}
	}

	if c.bus != nil {
		c.bus.PublishUploadOutcome(transferID, label, err)
	}
}
