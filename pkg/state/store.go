package state

import (
	"sync"

	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

// State is an immutable snapshot of the application state
type State struct {
	Templates []template.Template
	Current   string
	Route     Route
}

// Find returns the template with the given id
func (s State) Find(id string) (template.Template, bool) {
	if id == "" {
		return template.Template{}, false
	}
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return template.Template{}, false
}

// CurrentTemplate returns the selected template, if any
func (s State) CurrentTemplate() (template.Template, bool) {
	return s.Find(s.Current)
}

// Reduce computes the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case ReceiveTemplates:
		s.Templates = append([]template.Template(nil), act.Templates...)
		for i := range s.Templates {
			s.Templates[i].ThumbnailLoading = false
		}
		if _, ok := s.Find(s.Current); !ok {
			s.Current = ""
		}

	case SetTemplate:
		if _, ok := s.Find(act.ID); ok || act.ID == "" {
			s.Current = act.ID
		}

	case TemplateCreated:
		if _, exists := s.Find(act.Template.ID); exists {
			s.Templates = replace(s.Templates, act.Template.ID, func(template.Template) template.Template {
				return act.Template
			})
			break
		}
		s.Templates = append(append([]template.Template(nil), s.Templates...), act.Template)

	case TemplateDeleted:
		kept := make([]template.Template, 0, len(s.Templates))
		for _, t := range s.Templates {
			if t.ID != act.ID {
				kept = append(kept, t)
			}
		}
		s.Templates = kept
		if s.Current == act.ID {
			s.Current = ""
		}

	case UpdateTemplate:
		s.Templates = replace(s.Templates, act.ID, act.Updater)

	case UpdateCurrentTemplate:
		s.Templates = replace(s.Templates, s.Current, act.Updater)

	case Navigate:
		s.Route = act.Route
	}
	return s
}

// replace returns a copy of ts with the record matching id swapped for
// fn(record). The id is kept even if fn changes it.
func replace(ts []template.Template, id string, fn template.Updater) []template.Template {
	if id == "" || fn == nil {
		return ts
	}
	out := make([]template.Template, len(ts))
	copy(out, ts)
	for i, t := range out {
		if t.ID == id {
			next := fn(t)
			next.ID = id
			out[i] = next
			return out
		}
	}
	return ts
}

// Listener is called after every dispatch with the new state
type Listener func(State)

// Store is the shared, mutex-guarded application state
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

// NewStore creates a store on the home route
func NewStore() *Store {
	return &Store{state: State{Route: RouteHome}}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies the action and returns the resulting state
func (s *Store) Dispatch(a Action) State {
	logger := logging.GetLogger("state")

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	logger.Trace().
		Str("action", actionName(a)).
		Int("templates", len(next.Templates)).
		Str("current", next.Current).
		Msg("dispatched")

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Subscribe registers a listener called after each dispatch
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Find looks a template up by id
func (s *Store) Find(id string) (template.Template, bool) {
	return s.State().Find(id)
}

// Current returns the selected template
func (s *Store) Current() (template.Template, bool) {
	return s.State().CurrentTemplate()
}

func actionName(a Action) string {
	switch a.(type) {
	case ReceiveTemplates:
		return "receive_templates"
	case SetTemplate:
		return "set_template"
	case TemplateCreated:
		return "template_created"
	case TemplateDeleted:
		return "template_deleted"
	case UpdateTemplate:
		return "update_template"
	case UpdateCurrentTemplate:
		return "update_current_template"
	case Navigate:
		return "navigate"
	}
	return "unknown"
}
