// Package events provides a typed event bus for progress and state changes.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType defines the types of events that can be emitted.
type EventType string

const (
	EventUploadProgress EventType = "upload_progress"
	EventUploadOutcome  EventType = "upload_outcome"
	EventListingChanged EventType = "listing_changed"
)

// Default and maximum subscriber buffer sizes.
const (
	defaultBuffer = 256
	maxBuffer     = 4096
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// UploadProgressEvent reports transfer progress.
type UploadProgressEvent struct {
	BaseEvent
	TransferID string
	Label      string
	Percent    float64 // 0 to 100
	Current    int     // estimated item index
	Total      int     // total items in the transfer
}

// UploadOutcomeEvent reports a terminal transfer outcome.
// Err is nil on success.
type UploadOutcomeEvent struct {
	BaseEvent
	TransferID string
	Label      string
	Err        error
}

// ListingChangedEvent signals that a cached folder listing was invalidated.
type ListingChangedEvent struct {
	BaseEvent
	Endpoint string
	FolderID string
}

// Bus manages event subscriptions and publishing.
type Bus struct {
	subscribers map[EventType][]chan Event
	all         []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
	dropped     atomic.Int64
}

// NewBus creates a new event bus with the specified buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	if bufferSize > maxBuffer {
		bufferSize = maxBuffer
	}
	return &Bus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type.
func (b *Bus) Subscribe(eventType EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events.
func (b *Bus) SubscribeAll() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// Publish sends an event to all subscribers. Publishing never blocks: events
// are dropped when a subscriber's buffer is full.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}

	for _, ch := range b.all {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Unsubscribe removes a subscription channel from a specific event type.
func (b *Bus) Unsubscribe(eventType EventType, ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	subscribers := b.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			b.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, channels := range b.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
}

// DroppedEventCount returns the number of events dropped due to full buffers.
func (b *Bus) DroppedEventCount() int64 {
	return b.dropped.Load()
}

// PublishUploadProgress is a convenience method for progress events.
func (b *Bus) PublishUploadProgress(transferID, label string, percent float64, current, total int) {
	b.Publish(&UploadProgressEvent{
		BaseEvent:  BaseEvent{EventType: EventUploadProgress, Time: time.Now()},
		TransferID: transferID,
		Label:      label,
		Percent:    percent,
		Current:    current,
		Total:      total,
	})
}

// PublishUploadOutcome is a convenience method for terminal outcome events.
func (b *Bus) PublishUploadOutcome(transferID, label string, err error) {
	b.Publish(&UploadOutcomeEvent{
		BaseEvent:  BaseEvent{EventType: EventUploadOutcome, Time: time.Now()},
		TransferID: transferID,
		Label:      label,
		Err:        err,
	})
}

// PublishListingChanged is a convenience method for listing invalidations.
func (b *Bus) PublishListingChanged(endpoint, folderID string) {
	b.Publish(&ListingChangedEvent{
		BaseEvent: BaseEvent{EventType: EventListingChanged, Time: time.Now()},
		Endpoint:  endpoint,
		FolderID:  folderID,
	})
}
