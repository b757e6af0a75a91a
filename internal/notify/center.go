// Package notify maintains the ordered notification list with read/unread
// state. Notifications arrive synchronously at startup and are exempt from
// the dashboard readiness gate.
package notify

import (
	"sync"

	"agriintel/internal/model"
)

// Center owns the notification list. Order is preserved as delivered,
// newest first by convention.
type Center struct {
	mu    sync.RWMutex
	items []model.Notification
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// Seed replaces the list with the delivered entries.
func (c *Center) Seed(items []model.Notification) {
	c.mu.Lock()
	c.items = make([]model.Notification, len(items))
	copy(c.items, items)
	c.mu.Unlock()
}

// List returns a copy of the notification list.
func (c *Center) List() []model.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// UnreadCount returns the number of entries not yet acknowledged.
func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Acknowledge marks the entry with the given id as read, leaving order and
// every other entry untouched. Unknown ids are a no-op and return false.
func (c *Center) Acknowledge(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return true
		}
	}
	return false
}
