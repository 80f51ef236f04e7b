package actions

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/async"
	"github.com/arthur-debert/mjstudio/pkg/compiler"
	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/datastore"
	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/mailer"
	"github.com/arthur-debert/mjstudio/pkg/notify"
	"github.com/arthur-debert/mjstudio/pkg/snapshot"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Deps are the collaborators of a Studio. Store, Clock and NewID default
// when left nil; Mailer may stay nil when sending is not configured.
type Deps struct {
	Store       *state.Store
	Gateway     datastore.Gateway
	Compiler    compiler.Compiler
	Snapshotter snapshot.Snapshotter
	Dialogs     dialog.Dialogs
	Notifier    notify.Notifier
	Mailer      mailer.Mailer
	Config      *config.Store

	Clock func() time.Time
	NewID func() string
}

// Studio runs template operations
type Studio struct {
	store       *state.Store
	gateway     datastore.Gateway
	compiler    compiler.Compiler
	snapshotter snapshot.Snapshotter
	dialogs     dialog.Dialogs
	notifier    notify.Notifier
	mailer      mailer.Mailer
	config      *config.Store
	clock       func() time.Time
	newID       func() string

	logger  zerolog.Logger
	pending sync.WaitGroup
}

// New creates a Studio
func New(d Deps) *Studio {
	s := &Studio{
		store:       d.Store,
		gateway:     d.Gateway,
		compiler:    d.Compiler,
		snapshotter: d.Snapshotter,
		dialogs:     d.Dialogs,
		notifier:    d.Notifier,
		mailer:      d.Mailer,
		config:      d.Config,
		clock:       d.Clock,
		newID:       d.NewID,
		logger:      logging.GetLogger("actions"),
	}
	if s.store == nil {
		s.store = state.NewStore()
	}
	if s.config == nil {
		s.config = config.NewStore(config.Config{}, nil, "")
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Store returns the shared template store
func (s *Studio) Store() *state.Store {
	return s.store
}

// Wait blocks until every background save, delete and snapshot finished
func (s *Studio) Wait() {
	s.pending.Wait()
}

// background runs fn detached from ctx cancellation and tracks it for Wait
func (s *Studio) background(ctx context.Context, fn func(context.Context) error) *async.ExecFuture {
	s.pending.Add(1)
	f := async.Exec(context.WithoutCancel(ctx), fn)
	go func() {
		<-f.Done()
		s.pending.Done()
	}()
	return f
}

// stamp returns the current time, forced after prev so modification dates
// always move forward
func (s *Studio) stamp(prev time.Time) time.Time {
	now := s.clock()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}
