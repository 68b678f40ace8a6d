// Package state provides the observable listing cache for the client.
package state

import (
	"sync"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/events"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/models"
)

// ListingKey identifies one cached folder listing.
type ListingKey struct {
	Endpoint string
	FolderID string
}

// ListingCache caches folder listings keyed by (endpoint, folderID) and
// publishes a ListingChangedEvent whenever an entry is invalidated.
// Any create, upload, or delete affecting a folder must invalidate that
// folder's entry. Thread-safe.
type ListingCache struct {
	mu      sync.RWMutex
	entries map[ListingKey][]models.Entry
	bus     *events.Bus
}

// NewListingCache creates a listing cache. bus may be nil for callers that
// do not observe invalidations.
func NewListingCache(bus *events.Bus) *ListingCache {
	return &ListingCache{
		entries: make(map[ListingKey][]models.Entry),
		bus:     bus,
	}
}

// Get returns the cached listing for key, if present.
func (c *ListingCache) Get(endpoint, folderID string) ([]models.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.entries[ListingKey{Endpoint: endpoint, FolderID: folderID}]
	if !ok {
		return nil, false
	}
	result := make([]models.Entry, len(items))
	copy(result, items)
	return result, true
}

// Put stores a listing for key.
func (c *ListingCache) Put(endpoint, folderID string, items []models.Entry) {
	stored := make([]models.Entry, len(items))
	copy(stored, items)

	c.mu.Lock()
	c.entries[ListingKey{Endpoint: endpoint, FolderID: folderID}] = stored
	c.mu.Unlock()
}

// Invalidate removes the cached listing for key and publishes a
// ListingChangedEvent. Invalidating an absent key still publishes: the
// event signals that the folder's contents changed, not that a cache entry
// existed.
func (c *ListingCache) Invalidate(endpoint, folderID string) {
	c.mu.Lock()
	delete(c.entries, ListingKey{Endpoint: endpoint, FolderID: folderID})
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.PublishListingChanged(endpoint, folderID)
	}
}

// InvalidateFolder removes every cached listing for folderID across all
// endpoints.
func (c *ListingCache) InvalidateFolder(folderID string) {
	c.mu.Lock()
	var invalidated []ListingKey
	for key := range c.entries {
		if key.FolderID == folderID {
			delete(c.entries, key)
			invalidated = append(invalidated, key)
		}
	}
	c.mu.Unlock()

	if c.bus != nil {
		for _, key := range invalidated {
			c.bus.PublishListingChanged(key.Endpoint, key.FolderID)
		}
	}
}

// Len returns the number of cached listings.
func (c *ListingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
