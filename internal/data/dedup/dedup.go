package dedup

import (
	"sync"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

// Set remembers which responses have been seen during one load. It is shared
// by every loader worker; the first record offered for a hash wins.
type Set struct {
	mu   sync.Mutex
	seen map[model.UniqueHash]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[model.UniqueHash]struct{})}
}

// Add records hash and reports whether it was new.
func (s *Set) Add(hash model.UniqueHash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[hash]; ok {
		return false
	}
	s.seen[hash] = struct{}{}
	return true
}

// Keep reports whether r should be kept. Records missing either id carry no
// reliable identity and are always kept.
func (s *Set) Keep(r model.UsageRecord) bool {
	hash, ok := r.Hash()
	if !ok {
		return true
	}
	return s.Add(hash)
}

// Len returns the number of distinct hashes seen.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
