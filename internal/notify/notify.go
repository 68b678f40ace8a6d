// Package notify surfaces transfer outcomes to the user. The core invokes
// the OutcomeNotifier capability; the caller decides whether that means a
// desktop notification or a log line.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/config"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/logging"
)

// Kind classifies an outcome notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// OutcomeNotifier is the capability the upload coordinator invokes with a
// terminal outcome.
type OutcomeNotifier interface {
	Notify(kind Kind, message string)
}

// DesktopNotifier sends desktop notifications via beeep.
type DesktopNotifier struct {
	logger *logging.Logger
	cfg    config.NotificationConfig
	mu     sync.RWMutex
}

// NewDesktopNotifier creates a desktop notifier with the given settings.
func NewDesktopNotifier(cfg config.NotificationConfig, logger *logging.Logger) *DesktopNotifier {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return &DesktopNotifier{
		logger: logger,
		cfg:    cfg,
	}
}

// SetEnabled enables or disables notifications.
func (n *DesktopNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cfg.Enabled = enabled
}

// Notify sends one outcome notification, honoring the per-kind settings.
func (n *DesktopNotifier) Notify(kind Kind, message string) {
	n.mu.RLock()
	cfg := n.cfg
	n.mu.RUnlock()

	if !cfg.Enabled {
		return
	}

	switch kind {
	case KindSuccess:
		if !cfg.ShowUploadComplete {
			return
		}
		if err := beeep.Notify("MEETA DRIVE", message, ""); err != nil {
			n.logger.Warn().Err(err).Msg("failed to send notification")
		}
	case KindFailure:
		if !cfg.ShowUploadFailed {
			return
		}
		// Alert is more prominent on some platforms; fall back to Notify.
		if err := beeep.Alert("MEETA DRIVE", message, ""); err != nil {
			if err := beeep.Notify("MEETA DRIVE", message, ""); err != nil {
				n.logger.Warn().Err(err).Msg("failed to send notification")
			}
		}
	}
}

// LogNotifier writes outcomes to the logger. Used in headless contexts and
// as the CLI default, where the terminal already shows the outcome.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return &LogNotifier{logger: logger}
}

// Notify writes the outcome at a level matching its kind.
func (n *LogNotifier) Notify(kind Kind, message string) {
	switch kind {
	case KindFailure:
		n.logger.Error().Msg(message)
	default:
		n.logger.Info().Msg(message)
	}
}
