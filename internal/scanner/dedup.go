package scanner

import (
	"strconv"
	"sync"
	"time"
)

// SeenSet suppresses repeat sightings of the same (device, classroom)
// within a window, so a beacon that stays in range does not produce a
// redundant row every scan cycle. A nil set or zero window disables
// suppression.
type SeenSet struct {
	window time.Duration
	mu     sync.Mutex
	seen   map[string]time.Time
}

// NewSeenSet creates a set with the given suppression window.
func NewSeenSet(window time.Duration) *SeenSet {
	if window <= 0 {
		return nil
	}
	return &SeenSet{window: window, seen: make(map[string]time.Time)}
}

// Observe records the sighting and reports whether an earlier one for the
// same key is still within the window.
func (s *SeenSet) Observe(deviceAddr string, classroomID int, now time.Time) bool {
	if s == nil {
		return false
	}
	key := deviceAddr + "/" + strconv.Itoa(classroomID)
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.seen {
		if now.Sub(t) >= s.window {
			delete(s.seen, k)
		}
	}
	if t, ok := s.seen[key]; ok && now.Sub(t) < s.window {
		return true
	}
	s.seen[key] = now
	return false
}
