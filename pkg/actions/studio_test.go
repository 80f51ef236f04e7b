// Test Type: Unit Test
// Description: Shared fixture for Studio tests: in-memory filesystem, fake services, fixed clock

package actions_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/actions"
	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/datastore"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/testutil"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	studio   *actions.Studio
	store    *state.Store
	fs       *testutil.MemoryFS
	paths    paths.Paths
	gateway  datastore.Gateway
	compiler *testutil.FakeCompiler
	snap     *testutil.FakeSnapshotter
	notes    *testutil.NotifyRecorder
	dialogs  *testutil.FakeDialogs
	writer   *testutil.FakeFileWriter
	mail     *testutil.FakeMailer
	cfg      *config.Store
	events   *testutil.EventLog

	mu     sync.Mutex
	now    time.Time
	nextID int
}

type option func(*fixture, *actions.Deps)

// withRecordedPersistence logs "persist" for each gateway save
func withRecordedPersistence() option {
	return func(f *fixture, d *actions.Deps) {
		d.Gateway = recordingGateway{Gateway: d.Gateway, log: f.events}
	}
}

func withoutMailer() option {
	return func(_ *fixture, d *actions.Deps) { d.Mailer = nil }
}

func newFixture(t *testing.T, opts ...option) *fixture {
	t.Helper()

	f := &fixture{
		fs:       testutil.NewMemoryFS(),
		paths:    paths.NewWithRoot("/studio"),
		snap:     testutil.NewFakeSnapshotter(),
		notes:    testutil.NewNotifyRecorder(),
		dialogs:  &testutil.FakeDialogs{},
		writer:   testutil.NewFakeFileWriter(),
		mail:     &testutil.FakeMailer{},
		store:    state.NewStore(),
		events:   &testutil.EventLog{},
		now:      baseTime,
		compiler: testutil.NewFakeCompiler(),
	}
	f.compiler.Record(f.events)
	f.gateway = datastore.New(f.fs, f.paths, f.writer)

	cfg, err := config.Load(config.Sources{})
	require.NoError(t, err)
	f.cfg = config.NewStore(cfg, f.fs, f.paths.StateFilePath())

	deps := actions.Deps{
		Store:       f.store,
		Gateway:     f.gateway,
		Compiler:    f.compiler,
		Snapshotter: f.snap,
		Dialogs:     f.dialogs,
		Notifier:    f.notes,
		Mailer:      f.mail,
		Config:      f.cfg,
		Clock:       f.clock,
		NewID:       f.id,
	}
	for _, o := range opts {
		o(f, &deps)
	}
	f.studio = actions.New(deps)
	t.Cleanup(f.studio.Wait)
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) id() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("tpl-%d", f.nextID)
}

// seed puts a template straight into the store and selects it
func (f *fixture) seed(t template.Template) template.Template {
	f.store.Dispatch(state.TemplateCreated{Template: t})
	f.store.Dispatch(state.SetTemplate{ID: t.ID})
	return t
}

func (f *fixture) find(t *testing.T, id string) template.Template {
	t.Helper()
	tpl, ok := f.store.Find(id)
	require.True(t, ok, "template %s not in store", id)
	return tpl
}

func sample(id string) template.Template {
	return template.Template{
		ID:               id,
		Name:             "welcome",
		MJML:             "<mjml>v1</mjml>",
		HTML:             "<html>v1</html>",
		CreationDate:     baseTime.Add(-time.Hour),
		ModificationDate: baseTime.Add(-time.Hour),
	}
}

type recordingGateway struct {
	datastore.Gateway
	log *testutil.EventLog
}

func (g recordingGateway) Save(ctx context.Context, doc template.Document) error {
	g.log.Add("persist")
	return g.Gateway.Save(ctx, doc)
}
