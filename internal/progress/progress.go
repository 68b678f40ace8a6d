// Package progress provides progress reporting for CLI transfers.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter is the interface for reporting operation progress.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	SetDescription(desc string)
	Finish()
	Error(err error)
}

// CLIProgress renders a progress bar on stderr.
type CLIProgress struct {
	bar       *progressbar.ProgressBar
	showBytes bool
}

// NewCLIProgress creates a byte-denominated CLI progress reporter.
func NewCLIProgress() *CLIProgress {
	return &CLIProgress{showBytes: true}
}

// NewPercentProgress creates a percentage-denominated CLI reporter, used
// for transfers that report a completion ratio rather than raw bytes.
func NewPercentProgress() *CLIProgress {
	return &CLIProgress{}
}

// Start initializes the bar with total size and description.
func (p *CLIProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(p.showBytes),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update moves the bar to the current position.
func (p *CLIProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

// SetDescription updates the bar description.
func (p *CLIProgress) SetDescription(desc string) {
	if p.bar != nil {
		p.bar.Describe(desc)
	}
}

// Finish completes the bar.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Error prints an error below the bar.
func (p *CLIProgress) Error(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// NoOpProgress is a reporter that does nothing, for silent operations.
type NoOpProgress struct{}

// NewNoOpProgress creates a no-op reporter.
func NewNoOpProgress() *NoOpProgress {
	return &NoOpProgress{}
}

func (p *NoOpProgress) Start(total int64, description string) {}
func (p *NoOpProgress) Update(current int64)                  {}
func (p *NoOpProgress) SetDescription(desc string)            {}
func (p *NoOpProgress) Finish()                               {}
func (p *NoOpProgress) Error(err error)                       {}
