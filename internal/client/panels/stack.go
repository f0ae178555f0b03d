// Package panels keeps the view state of the dashboard's floating panels
// (new ticket form, comment editor, ...).
//
// At most one panel is open at any time: opening or creating a panel
// minimizes every other one. Operations on an unknown id are no-ops, since
// they only happen when a close races another action on the same panel.
package panels

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusMinimized Status = "minimized"
)

type Panel struct {
	ID        string
	Status    Status
	CreatedAt time.Time
}

// Stack is the keyed panel collection. It is driven from the UI loop and is
// not safe for concurrent use.
type Stack struct {
	panels map[string]*Panel
	now    func() time.Time
	newID  func() string
}

func NewStack() *Stack {
	return &Stack{
		panels: make(map[string]*Panel),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create opens a new panel and returns its id. An empty id gets a fresh
// UUID. Creating an id that already exists reopens that panel instead of
// adding a second one.
func (s *Stack) Create(id string) string {
	if id == "" {
		id = s.newID()
	}
	if _, ok := s.panels[id]; !ok {
		s.panels[id] = &Panel{ID: id, CreatedAt: s.now()}
	}
	s.openOnly(id)
	return id
}

// Open makes id the only open panel.
func (s *Stack) Open(id string) {
	if _, ok := s.panels[id]; !ok {
		return
	}
	s.openOnly(id)
}

// Minimize minimizes id without touching the other panels.
func (s *Stack) Minimize(id string) {
	if p, ok := s.panels[id]; ok {
		p.Status = StatusMinimized
	}
}

// Close removes id from the stack.
func (s *Stack) Close(id string) {
	delete(s.panels, id)
}

// Toggle reopens id when it exists and creates it otherwise.
func (s *Stack) Toggle(id string) {
	if _, ok := s.panels[id]; ok {
		s.Open(id)
		return
	}
	s.Create(id)
}

func (s *Stack) openOnly(id string) {
	for key, p := range s.panels {
		if key == id {
			p.Status = StatusOpen
		} else {
			p.Status = StatusMinimized
		}
	}
}

func (s *Stack) Get(id string) (Panel, bool) {
	p, ok := s.panels[id]
	if !ok {
		return Panel{}, false
	}
	return *p, true
}

// Active returns the open panel, if any.
func (s *Stack) Active() (Panel, bool) {
	for _, p := range s.panels {
		if p.Status == StatusOpen {
			return *p, true
		}
	}
	return Panel{}, false
}

func (s *Stack) Len() int {
	return len(s.panels)
}

// Panels returns a snapshot keyed by id.
func (s *Stack) Panels() map[string]Panel {
	out := make(map[string]Panel, len(s.panels))
	for id, p := range s.panels {
		out[id] = *p
	}
	return out
}

// Ordered returns the panels oldest first, ties broken by id.
func (s *Stack) Ordered() []Panel {
	out := make([]Panel, 0, len(s.panels))
	for _, p := range s.panels {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Next returns the panel after id in display order, wrapping around. With
// an unknown id it returns the first panel.
func (s *Stack) Next(id string) (Panel, bool) {
	ordered := s.Ordered()
	if len(ordered) == 0 {
		return Panel{}, false
	}
	for i, p := range ordered {
		if p.ID == id {
			return ordered[(i+1)%len(ordered)], true
		}
	}
	return ordered[0], true
}
