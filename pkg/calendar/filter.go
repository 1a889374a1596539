package calendar

import (
	"sync"

	"tableflip.dev/diary/pkg/entry"
)

// CountByDate counts entries per calendar day. Every entry is counted
// exactly once, under entry.DateKey of its date; dates that do not look
// like dates still get a key of their own.
func CountByDate(entries []*entry.Entry) map[string]int {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		counts[entry.DateKey(e.Date)]++
	}
	return counts
}

// Filter narrows entries to the selected day. With no selection the input
// slice is returned as is.
func Filter(entries []*entry.Entry, selected string) []*entry.Entry {
	if selected == "" {
		return entries
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil && entry.DateKey(e.Date) == selected {
			out = append(out, e)
		}
	}
	return out
}

// Selection is the day picked on the calendar. Picking the selected day
// again clears it; picking another day replaces it. Concurrent pickers are
// serialized and the last one wins.
type Selection struct {
	mu  sync.Mutex
	key string
}

// Toggle applies a click on key and returns the resulting selection.
func (s *Selection) Toggle(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == key {
		s.key = ""
	} else {
		s.key = key
	}
	return s.key
}

// Set selects key without toggling.
func (s *Selection) Set(key string) {
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.Set("")
}

// Current returns the selected key or "".
func (s *Selection) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}
