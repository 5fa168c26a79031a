// Package inventory tracks the resources the player has gathered.
// Counts only ever grow; there is no spending in the core.
package inventory

import (
	"fmt"
	"strings"
	"sync"

	"chosenoffset.com/frontier/internal/world/resource"
)

// Slot is one resource type and its quantity
type Slot struct {
	Type  resource.Type `json:"type"`
	Count int           `json:"count"`
}

// Inventory holds the player's resource counts
type Inventory struct {
	mu sync.RWMutex

	counts map[resource.Type]int

	// OnChange is called after a count changes (for UI updates)
	OnChange func(t resource.Type, count int)
}

// New creates an inventory with every resource at zero
func New() *Inventory {
	inv := &Inventory{counts: make(map[resource.Type]int)}
	for _, t := range resource.Types() {
		inv.counts[t] = 0
	}
	return inv
}

// Add adds count units of t and returns the amount added. Non-positive
// counts are ignored.
func (inv *Inventory) Add(t resource.Type, count int) int {
	if count <= 0 {
		return 0
	}

	inv.mu.Lock()
	inv.counts[t] += count
	total := inv.counts[t]
	onChange := inv.OnChange
	inv.mu.Unlock()

	if onChange != nil {
		onChange(t, total)
	}
	return count
}

// Count returns the quantity of t
func (inv *Inventory) Count(t resource.Type) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.counts[t]
}

// Counts returns every resource type and its quantity in type order
func (inv *Inventory) Counts() []Slot {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	result := make([]Slot, 0, len(inv.counts))
	for _, t := range resource.Types() {
		result = append(result, Slot{Type: t, Count: inv.counts[t]})
	}
	return result
}

// Total returns the sum of all counts
func (inv *Inventory) Total() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	total := 0
	for _, count := range inv.counts {
		total += count
	}
	return total
}

// IsEmpty returns true if nothing has been gathered yet
func (inv *Inventory) IsEmpty() bool {
	return inv.Total() == 0
}

// String renders the counts as "wood:1 stone:0 ..."
func (inv *Inventory) String() string {
	parts := make([]string, 0, 4)
	for _, s := range inv.Counts() {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Type, s.Count))
	}
	return strings.Join(parts, " ")
}
