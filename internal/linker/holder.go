package linker

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

// Holder publishes the current Linker.
//
// Readers take one Linker per request and use it for every call, so a reload
// never shows a half-applied configuration.
type Holder struct {
	mu         sync.RWMutex
	current    *Linker
	lastReload time.Time // Timestamp of last successful swap
	reloads    int       // Number of successful swaps
}

// NewHolder creates a holder serving snap.
func NewHolder(snap *settings.Snapshot) *Holder {
	return &Holder{
		current:    New(snap),
		lastReload: time.Now(),
	}
}

// Current returns the Linker for the latest snapshot.
func (h *Holder) Current() *Linker {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.current
}

// Swap replaces the current Linker with one built from snap.
func (h *Holder) Swap(snap *settings.Snapshot) *Linker {
	next := New(snap)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = next
	h.lastReload = time.Now()
	h.reloads++
	return next
}

// GetLastReload returns the timestamp of the last swap.
func (h *Holder) GetLastReload() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastReload
}

// Reloads returns the number of swaps since startup.
func (h *Holder) Reloads() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.reloads
}
