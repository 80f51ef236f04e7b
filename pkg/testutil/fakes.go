package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/mailer"
	"github.com/arthur-debert/mjstudio/pkg/synthfs"
)

// CompiledHTML is what FakeCompiler returns for markup by default
func CompiledHTML(markup string) string {
	return "<html>" + markup + "</html>"
}

// FakeCompiler renders markup with CompiledHTML and fails for markup
// registered with FailOn
type FakeCompiler struct {
	mu     sync.Mutex
	fail   map[string]error
	calls  []string
	gate   chan struct{}
	events *EventLog
}

// NewFakeCompiler creates a compiler that always succeeds
func NewFakeCompiler() *FakeCompiler {
	return &FakeCompiler{fail: make(map[string]error)}
}

// FailOn makes Compile return err for markup
func (f *FakeCompiler) FailOn(markup string, err error) *FakeCompiler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[markup] = err
	return f
}

// Gate blocks every Compile until the returned channel is closed
func (f *FakeCompiler) Gate() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	return f.gate
}

// Record appends "compile" to log on each call
func (f *FakeCompiler) Record(log *EventLog) *FakeCompiler {
	f.events = log
	return f
}

func (f *FakeCompiler) Compile(ctx context.Context, markup string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, markup)
	gate, err, events := f.gate, f.fail[markup], f.events
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	events.Add("compile")
	if err != nil {
		return "", err
	}
	return CompiledHTML(markup), nil
}

// Calls returns the markup of every Compile call
func (f *FakeCompiler) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// FakeSnapshotter records snapshot requests
type FakeSnapshotter struct {
	mu    sync.Mutex
	err   error
	ids   []string
	html  []string
	gate  chan struct{}
	width []int
}

// NewFakeSnapshotter creates a snapshotter that always succeeds
func NewFakeSnapshotter() *FakeSnapshotter {
	return &FakeSnapshotter{}
}

// WithError makes every call fail
func (f *FakeSnapshotter) WithError(err error) *FakeSnapshotter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// Gate blocks TakeSnapshot until the returned channel is closed
func (f *FakeSnapshotter) Gate() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	return f.gate
}

func (f *FakeSnapshotter) TakeSnapshot(ctx context.Context, id, html string) error {
	f.mu.Lock()
	f.ids = append(f.ids, id)
	f.html = append(f.html, html)
	gate, err := f.gate, f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *FakeSnapshotter) Capture(_ context.Context, html string, width int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = append(f.width, width)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("png:%d", width)), nil
}

// IDs returns the ids passed to TakeSnapshot
func (f *FakeSnapshotter) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

// HTML returns the html passed to TakeSnapshot
func (f *FakeSnapshotter) HTML() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.html...)
}

// Widths returns the widths passed to Capture
func (f *FakeSnapshotter) Widths() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.width...)
}

// NotifyRecorder captures notifications
type NotifyRecorder struct {
	mu     sync.Mutex
	notes  []string
	errors []string
}

// NewNotifyRecorder creates an empty recorder
func NewNotifyRecorder() *NotifyRecorder {
	return &NotifyRecorder{}
}

func (n *NotifyRecorder) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, msg)
}

func (n *NotifyRecorder) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// Notifications returns success messages in order
func (n *NotifyRecorder) Notifications() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notes...)
}

// Errors returns error messages in order
func (n *NotifyRecorder) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// FakeDialogs answers dialogs with canned values and records the requests
type FakeDialogs struct {
	mu           sync.Mutex
	OpenPath     string
	SavePath     string
	Err          error
	saveDefaults []string
	openFilters  [][]dialog.Filter
}

func (d *FakeDialogs) Open(_ context.Context, filters []dialog.Filter) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openFilters = append(d.openFilters, filters)
	if d.Err != nil {
		return "", false, d.Err
	}
	return d.OpenPath, d.OpenPath != "", nil
}

func (d *FakeDialogs) Save(_ context.Context, defaultPath string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saveDefaults = append(d.saveDefaults, defaultPath)
	if d.Err != nil {
		return "", false, d.Err
	}
	return d.SavePath, d.SavePath != "", nil
}

// SaveDefaults returns the default paths offered to Save
func (d *FakeDialogs) SaveDefaults() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.saveDefaults...)
}

// OpenFilters returns the filters passed to Open
func (d *FakeDialogs) OpenFilters() [][]dialog.Filter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]dialog.Filter(nil), d.openFilters...)
}

// FakeFileWriter keeps written files in memory
type FakeFileWriter struct {
	mu     sync.Mutex
	files  map[string]string
	order  []string
	err    error
	events *EventLog
}

// NewFakeFileWriter creates an empty writer
func NewFakeFileWriter() *FakeFileWriter {
	return &FakeFileWriter{files: make(map[string]string)}
}

// WithError makes every write fail
func (w *FakeFileWriter) WithError(err error) *FakeFileWriter {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
	return w
}

func (w *FakeFileWriter) WriteFiles(_ context.Context, writes ...synthfs.FileWrite) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	for _, f := range writes {
		w.files[f.Path] = string(f.Content)
		w.order = append(w.order, f.Path)
	}
	return nil
}

// File returns the content written to path
func (w *FakeFileWriter) File(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.files[path]
	return c, ok
}

// Paths returns written paths in order
func (w *FakeFileWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// FakeMailer records sent messages
type FakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	Err  error
}

func (m *FakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns the delivered messages
func (m *FakeMailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

// EventLog records named steps from concurrent code in order. A nil log
// ignores events.
type EventLog struct {
	mu     sync.Mutex
	events []string
}

// Add appends an event
func (l *EventLog) Add(event string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns the recorded events
func (l *EventLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}
