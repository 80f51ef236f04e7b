// Test Type: Unit Test
// Description: Tests for the template update pipeline and template saves

package actions_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSkipsCompileWhenMarkupUnchanged(t *testing.T) {
	f := newFixture(t)
	orig := f.seed(sample("a"))

	err := f.studio.UpdateCurrentTemplate(context.Background(), template.Rename("renamed"))
	require.NoError(t, err)

	got := f.find(t, "a")
	assert.Empty(t, f.compiler.Calls())
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, orig.HTML, got.HTML)
	assert.True(t, got.ModificationDate.After(orig.ModificationDate))
}

func TestUpdateRecompilesChangedMarkup(t *testing.T) {
	f := newFixture(t)
	orig := f.seed(sample("a"))

	err := f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>v2</mjml>"))
	require.NoError(t, err)

	got := f.find(t, "a")
	assert.Equal(t, []string{"<mjml>v2</mjml>"}, f.compiler.Calls())
	assert.Equal(t, "<mjml>v2</mjml>", got.MJML)
	assert.Equal(t, testutil.CompiledHTML("<mjml>v2</mjml>"), got.HTML)
	assert.True(t, got.ModificationDate.After(orig.ModificationDate))
	assert.Equal(t, orig.CreationDate, got.CreationDate)
}

func TestUpdateModificationDateAlwaysMovesForward(t *testing.T) {
	f := newFixture(t)
	// stored date is ahead of the clock
	tpl := sample("a")
	tpl.ModificationDate = baseTime.Add(time.Hour)
	f.seed(tpl)

	require.NoError(t, f.studio.UpdateCurrentTemplate(context.Background(), template.Rename("x")))
	first := f.find(t, "a").ModificationDate
	require.NoError(t, f.studio.UpdateCurrentTemplate(context.Background(), template.Rename("y")))
	second := f.find(t, "a").ModificationDate

	assert.True(t, first.After(tpl.ModificationDate))
	assert.True(t, second.After(first))
}

func TestUpdateUsesClock(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))
	f.advance(time.Minute)

	require.NoError(t, f.studio.UpdateCurrentTemplate(context.Background(), template.Rename("x")))

	assert.Equal(t, baseTime.Add(time.Minute), f.find(t, "a").ModificationDate)
}

func TestUpdateCompileFailureIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.compiler.FailOn("<mjml>broken", stderrors.New("unclosed tag"))
	orig := f.seed(sample("a"))

	err := f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>broken"))
	require.NoError(t, err)

	got := f.find(t, "a")
	assert.Equal(t, "<mjml>broken", got.MJML)
	assert.Equal(t, orig.HTML, got.HTML, "previous render is kept")
	assert.True(t, got.ModificationDate.After(orig.ModificationDate))
	require.Len(t, f.notes.Errors(), 1)
	assert.Contains(t, f.notes.Errors()[0], "unclosed tag")
}

func TestUpdateWithoutCurrentTemplate(t *testing.T) {
	f := newFixture(t)
	f.store.Dispatch(state.TemplateCreated{Template: sample("a")})

	called := false
	err := f.studio.UpdateCurrentTemplate(context.Background(), func(t template.Template) template.Template {
		called = true
		return t
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.False(t, called)
	assert.Empty(t, f.compiler.Calls())
}

func TestUpdateKeepsID(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))

	err := f.studio.UpdateCurrentTemplate(context.Background(), func(t template.Template) template.Template {
		t.ID = "other"
		return t
	})
	require.NoError(t, err)

	_, ok := f.store.Find("other")
	assert.False(t, ok)
	f.find(t, "a")
}

func TestUpdatePersistsCleanRecord(t *testing.T) {
	f := newFixture(t)
	tpl := sample("a")
	tpl.ThumbnailLoading = true
	f.seed(tpl)

	require.NoError(t, f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>v2</mjml>")))
	f.studio.Wait()

	data, err := f.fs.ReadFile(f.paths.TemplatePath("a"))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "<mjml>v2</mjml>", raw["mjml"])
	assert.Equal(t, testutil.CompiledHTML("<mjml>v2</mjml>"), raw["html"])
	assert.NotContains(t, raw, "thumbnailLoading")
	assert.NotContains(t, raw, "ThumbnailLoading")

	assert.True(t, f.find(t, "a").ThumbnailLoading, "transient flag survives in memory")
}

func TestUpdateStepsAreOrdered(t *testing.T) {
	f := newFixture(t, withRecordedPersistence())
	f.seed(sample("a"))

	var once sync.Once
	f.store.Subscribe(func(st state.State) {
		if tpl, ok := st.Find("a"); ok && tpl.MJML == "<mjml>v2</mjml>" {
			once.Do(func() { f.events.Add("commit") })
		}
	})

	require.NoError(t, f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>v2</mjml>")))
	f.studio.Wait()

	assert.Equal(t, []string{"compile", "commit", "persist"}, f.events.Events())
}

func TestConcurrentUpdatesEachComplete(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, markup := range []string{"<mjml>x</mjml>", "<mjml>y</mjml>"} {
		wg.Add(1)
		go func(i int, markup string) {
			defer wg.Done()
			errs[i] = f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML(markup))
		}(i, markup)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	got := f.find(t, "a")
	assert.Contains(t, []string{"<mjml>x</mjml>", "<mjml>y</mjml>"}, got.MJML)
	assert.Equal(t, testutil.CompiledHTML(got.MJML), got.HTML, "html matches the winning markup")
}

func TestSaveTemplateWithID(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))

	fut, err := f.studio.SaveTemplateWithID(context.Background(), "a")
	require.NoError(t, err)
	require.NoError(t, fut.Await())
	assert.True(t, f.fs.Exists(f.paths.TemplatePath("a")))

	_, err = f.studio.SaveTemplateWithID(context.Background(), "missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSaveTemplateReportsGatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))
	f.fs.WithError(f.paths.TemplatePath("a"), stderrors.New("read-only"))

	fut, err := f.studio.SaveTemplate(context.Background())
	require.NoError(t, err)

	err = fut.Await()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPersistWrite))
}

func TestSaveTemplateWithoutCurrent(t *testing.T) {
	f := newFixture(t)

	_, err := f.studio.SaveTemplate(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestUpdateAfterConcurrentDeleteReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed(sample("a"))
	gate := f.compiler.Gate()

	done := make(chan error, 1)
	go func() {
		done <- f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>v2</mjml>"))
	}()
	require.Eventually(t, func() bool { return len(f.compiler.Calls()) == 1 }, time.Second, time.Millisecond)

	f.store.Dispatch(state.TemplateDeleted{ID: "a"})
	close(gate)

	err := <-done
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	f.studio.Wait()
	_, ok := f.store.Find("a")
	assert.False(t, ok, "deleted template must not come back")
	assert.False(t, f.fs.Exists(f.paths.TemplatePath("a")))
}

func TestUpdateKeepsLiveThumbnailLoading(t *testing.T) {
	f := newFixture(t)
	orig := f.seed(sample("a"))
	compileGate := f.compiler.Gate()
	snapGate := f.snap.Gate()

	done := make(chan error, 1)
	go func() {
		done <- f.studio.UpdateCurrentTemplate(context.Background(), template.SetMJML("<mjml>v2</mjml>"))
	}()
	require.Eventually(t, func() bool { return len(f.compiler.Calls()) == 1 }, time.Second, time.Millisecond)

	snapshot := f.studio.MakeSnapshot(context.Background(), orig)
	require.True(t, f.find(t, "a").ThumbnailLoading)
	close(compileGate)
	require.NoError(t, <-done)

	got := f.find(t, "a")
	assert.True(t, got.ThumbnailLoading)
	assert.Equal(t, "<mjml>v2</mjml>", got.MJML)

	close(snapGate)
	require.NoError(t, snapshot.Await())
	assert.False(t, f.find(t, "a").ThumbnailLoading)
}
