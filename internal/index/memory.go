package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Navigation is where a document sits in its sidebar.
type Navigation struct {
	DocID      string   `json:"doc_id"`
	Sidebar    string   `json:"sidebar"`
	Position   int      `json:"position"` // 0-based in reading order
	Previous   string   `json:"previous,omitempty"`
	Next       string   `json:"next,omitempty"`
	Breadcrumb []string `json:"breadcrumb,omitempty"` // enclosing category labels
}

// MemoryIndex holds the current sidebar snapshot and its navigation tables.
// A snapshot is never modified; Update swaps in a new one.
type MemoryIndex struct {
	mu         sync.RWMutex
	config     *domain.Config
	source     string                           // strategy that produced config
	navigation map[string]map[string]Navigation // sidebar -> doc id -> nav
	lastReload time.Time
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		navigation: make(map[string]map[string]Navigation),
	}
}

// Update replaces the snapshot
func (idx *MemoryIndex) Update(cfg *domain.Config, source string) {
	nav := buildNavigation(cfg)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.config = cfg
	idx.source = source
	idx.navigation = nav
	idx.lastReload = time.Now()
}

func buildNavigation(cfg *domain.Config) map[string]map[string]Navigation {
	out := make(map[string]map[string]Navigation, cfg.Len())
	for _, sb := range cfg.Sidebars() {
		type visit struct {
			id    string
			trail []string
		}
		var order []visit
		sb.Walk(func(ref domain.DocRef, trail []string) {
			order = append(order, visit{id: string(ref), trail: append([]string(nil), trail...)})
		})

		byDoc := make(map[string]Navigation, len(order))
		for i, v := range order {
			n := Navigation{
				DocID:      v.id,
				Sidebar:    sb.Name,
				Position:   i,
				Breadcrumb: v.trail,
			}
			if i > 0 {
				n.Previous = order[i-1].id
			}
			if i+1 < len(order) {
				n.Next = order[i+1].id
			}
			byDoc[v.id] = n
		}
		out[sb.Name] = byDoc
	}
	return out
}

// Config returns the current snapshot, nil before the first load
func (idx *MemoryIndex) Config() *domain.Config {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.config
}

// Source names the strategy behind the current snapshot
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.source
}

// Sidebar retrieves one sidebar by name
func (idx *MemoryIndex) Sidebar(name string) (domain.Sidebar, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.config.Sidebar(name)
}

// Navigation finds docID. With sidebar empty, sidebars are searched in
// authoring order and the first hit wins.
func (idx *MemoryIndex) Navigation(sidebar, docID string) (Navigation, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if sidebar != "" {
		n, ok := idx.navigation[sidebar][docID]
		return n, ok
	}
	for _, name := range idx.config.Names() {
		if n, ok := idx.navigation[name][docID]; ok {
			return n, true
		}
	}
	return Navigation{}, false
}

// Count returns the number of sidebars in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.config.Len()
}

// DocCount returns the number of distinct (sidebar, doc) positions
func (idx *MemoryIndex) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	total := 0
	for _, docs := range idx.navigation {
		total += len(docs)
	}
	return total
}

// Ready reports whether a snapshot has been loaded
func (idx *MemoryIndex) Ready() bool {
	return idx.Config() != nil
}

// GetLastReload returns the time of the last Update
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastReload
}
