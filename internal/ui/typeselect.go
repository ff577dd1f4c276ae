package ui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"
)

// typeSelect is a fuzzy-filtered picker over the allowed branch type
// tags. Typing narrows the candidates, up/down moves between them.
type typeSelect struct {
	tags     []string
	filter   string
	filtered []fuzzy.Match
	cursor   int
}

// tagSource implements fuzzy.Source over the tag list.
type tagSource []string

func (s tagSource) String(i int) string { return s[i] }
func (s tagSource) Len() int            { return len(s) }

func newTypeSelect(tags []string) *typeSelect {
	s := &typeSelect{tags: tags}
	s.applyFilter()
	return s
}

// Current returns the highlighted tag. The filter can never empty the
// candidate list (Handle rejects such input), so this only returns ""
// for an empty tag set.
func (s *typeSelect) Current() string {
	if len(s.filtered) == 0 {
		return ""
	}
	return s.tags[s.filtered[s.cursor].Index]
}

// Select moves the cursor to the given tag if it is in the tag set.
func (s *typeSelect) Select(tag string) {
	for i, m := range s.filtered {
		if s.tags[m.Index] == tag {
			s.cursor = i
			return
		}
	}
}

// Handle processes one key press. It reports whether the selection or
// filter changed.
func (s *typeSelect) Handle(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
		return true
	case "down":
		if s.cursor < len(s.filtered)-1 {
			s.cursor++
		}
		return true
	case "backspace":
		if s.filter == "" {
			return false
		}
		s.filter = s.filter[:len(s.filter)-1]
		s.applyFilter()
		return true
	}

	if msg.Text != "" && msg.Mod == 0 {
		prev := s.filter
		s.filter += msg.Text
		s.applyFilter()
		// A filter that matches nothing would leave no candidate to
		// highlight or submit; reject the keystroke instead.
		if len(s.filtered) == 0 {
			s.filter = prev
			s.applyFilter()
			return false
		}
		return true
	}
	return false
}

// matches reports whether tag survives the current filter.
func (s *typeSelect) matches(tag string) bool {
	for _, m := range s.filtered {
		if s.tags[m.Index] == tag {
			return true
		}
	}
	return false
}

// applyFilter recomputes the candidate list, keeping ranked order for a
// non-empty filter and declaration order otherwise.
func (s *typeSelect) applyFilter() {
	if s.filter == "" {
		s.filtered = make([]fuzzy.Match, len(s.tags))
		for i := range s.tags {
			s.filtered[i] = fuzzy.Match{Str: s.tags[i], Index: i}
		}
	} else {
		s.filtered = fuzzy.FindFrom(s.filter, tagSource(s.tags))
	}
	// Snap to the best match whenever the filter changes.
	s.cursor = 0
}
