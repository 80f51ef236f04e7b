package actions

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/async"
	"github.com/arthur-debert/mjstudio/pkg/compiler"
	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/mjml"
	"github.com/arthur-debert/mjstudio/pkg/presets"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

// Notification texts
const (
	MsgBadInput   = "Bad input file."
	MsgDeleted    = "Deleted!"
	MsgNotDeleted = "Not Deleted!"
)

// CreateOptions tune CreateNewTemplate
type CreateOptions struct {
	// Name defaults to template.DefaultName.
	Name string
	// NoRedirect keeps the current template and route unchanged.
	NoRedirect bool
}

// ReadTemplates loads every stored template into the store
func (s *Studio) ReadTemplates(ctx context.Context) error {
	docs, err := s.gateway.ReadTemplates(ctx)
	if err != nil {
		return err
	}
	list := make([]template.Template, len(docs))
	for i, d := range docs {
		list[i] = d.Template()
	}
	s.store.Dispatch(state.ReceiveTemplates{Templates: list})
	return nil
}

// SetTemplate makes id the current template
func (s *Studio) SetTemplate(id string) error {
	if _, ok := s.store.Find(id); !ok {
		return errors.Newf(errors.ErrNotFound, "template %s not found", id).WithDetail("id", id)
	}
	s.store.Dispatch(state.SetTemplate{ID: id})
	return nil
}

// LoadTemplate selects id and opens it in the editor
func (s *Studio) LoadTemplate(id string) error {
	if err := s.SetTemplate(id); err != nil {
		return err
	}
	s.store.Dispatch(state.Navigate{Route: state.RouteEditor})
	return nil
}

// UpdateCurrentTemplate applies updater to the current template.
//
// The markup is recompiled only when the updater changed it. A failed
// compile is reported to the notifier and the previous HTML is kept; the
// update is committed anyway. The modification date is stamped after
// compilation, the record is replaced by id and a save is started.
func (s *Studio) UpdateCurrentTemplate(ctx context.Context, updater template.Updater) error {
	logger := logging.GetLogger("actions.update")

	original, ok := s.store.Current()
	if !ok {
		return errors.New(errors.ErrNotFound, "no current template")
	}

	candidate := updater(original)
	candidate.ID = original.ID

	if candidate.MJML != original.MJML {
		html, err := compiler.CompileAsync(ctx, s.compiler, candidate.MJML).Await()
		if err != nil {
			logger.Warn().Err(err).Str("id", original.ID).Msg("Compilation failed, keeping previous HTML")
			s.notifier.Error(err.Error())
			candidate.HTML = original.HTML
		} else {
			candidate.HTML = html
		}
	}

	candidate.ModificationDate = s.stamp(original.ModificationDate)

	st := s.store.Dispatch(state.UpdateTemplate{
		ID: original.ID,
		Updater: func(current template.Template) template.Template {
			next := candidate
			next.ThumbnailLoading = current.ThumbnailLoading
			return next
		},
	})
	if _, ok := st.Find(original.ID); !ok {
		return errors.Newf(errors.ErrNotFound, "template %s was removed during the update", original.ID).
			WithDetail("id", original.ID)
	}

	if _, err := s.SaveTemplateWithID(ctx, original.ID); err != nil {
		return err
	}
	logger.Debug().Str("id", original.ID).Msg("Template updated")
	return nil
}

// SaveTemplateWithID persists the template in the background. The future
// reports the write; failures are also logged.
func (s *Studio) SaveTemplateWithID(ctx context.Context, id string) (*async.ExecFuture, error) {
	t, ok := s.store.Find(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "template %s not found", id).WithDetail("id", id)
	}
	doc := t.Clean()

	return s.background(ctx, func(ctx context.Context) error {
		if err := s.gateway.Save(ctx, doc); err != nil {
			s.logger.Error().Err(err).Str("id", doc.ID).Msg("Saving template failed")
			return err
		}
		return nil
	}), nil
}

// SaveTemplate persists the current template
func (s *Studio) SaveTemplate(ctx context.Context) (*async.ExecFuture, error) {
	return s.SaveTemplateWithID(ctx, s.store.State().Current)
}

// CreateNewTemplate compiles markup and adds the result as a new template.
// Empty markup uses the default content. When compilation fails nothing
// is created.
func (s *Studio) CreateNewTemplate(ctx context.Context, markup string, opts CreateOptions) (template.Template, error) {
	if strings.TrimSpace(markup) == "" {
		markup = presets.DefaultContent()
	}

	html, err := compiler.CompileAsync(ctx, s.compiler, markup).Await()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cannot create template from markup")
		s.notifier.Error(MsgBadInput)
		return template.Template{}, errors.Wrap(err, errors.ErrCompile, "cannot compile new template")
	}

	name := opts.Name
	if name == "" {
		name = template.DefaultName
	}
	now := s.clock()
	t := template.Template{
		ID:               s.newID(),
		Name:             name,
		MJML:             markup,
		HTML:             html,
		CreationDate:     now,
		ModificationDate: now,
	}

	s.store.Dispatch(state.TemplateCreated{Template: t})
	if _, err := s.SaveTemplateWithID(ctx, t.ID); err != nil {
		return t, err
	}
	s.MakeSnapshot(ctx, t)

	if !opts.NoRedirect {
		s.store.Dispatch(state.SetTemplate{ID: t.ID})
		s.store.Dispatch(state.Navigate{Route: state.RouteEditor})
	}

	s.logger.Info().Str("id", t.ID).Str("name", t.Name).Msg("Template created")
	return t, nil
}

// DeleteTemplate removes t from the store at once, then deletes it from
// disk in the background. A failed disk delete is reported but the
// in-memory removal is not undone.
func (s *Studio) DeleteTemplate(ctx context.Context, t template.Template) *async.ExecFuture {
	id := t.ID
	if id == "" {
		return async.Done(errors.New(errors.ErrInvalidInput, "cannot delete a template without id"))
	}
	s.store.Dispatch(state.TemplateDeleted{ID: id})

	return s.background(ctx, func(ctx context.Context) error {
		if err := s.gateway.DeleteTemplate(ctx, id); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("Deleting template failed")
			s.notifier.Error(MsgNotDeleted)
			return err
		}
		s.notifier.Notify(MsgDeleted)
		return nil
	})
}

// DuplicateTemplate creates "<name>_copy" with the same markup without
// leaving the current view
func (s *Studio) DuplicateTemplate(ctx context.Context, t template.Template) (template.Template, error) {
	return s.CreateNewTemplate(ctx, t.MJML, CreateOptions{
		Name:       t.Name + "_copy",
		NoRedirect: true,
	})
}

// UsePreset creates a template from a preset
func (s *Studio) UsePreset(ctx context.Context, p presets.Preset) (template.Template, error) {
	return s.CreateNewTemplate(ctx, p.MJML, CreateOptions{})
}

// Open asks for an .mjml file and imports it. Cancelled dialogs and files
// with another extension are ignored and return ok=false.
func (s *Studio) Open(ctx context.Context) (t template.Template, ok bool, err error) {
	path, ok, err := s.dialogs.Open(ctx, []dialog.Filter{dialog.MJMLFilter})
	if err != nil {
		return template.Template{}, false, errors.Wrap(err, errors.ErrDialog, "open dialog failed")
	}
	if !ok {
		return template.Template{}, false, nil
	}
	if filepath.Ext(path) != ".mjml" {
		s.logger.Debug().Str("path", path).Msg("Ignoring non-mjml file")
		return template.Template{}, false, nil
	}

	content, err := s.gateway.ReadFile(ctx, path)
	if err != nil {
		return template.Template{}, false, err
	}

	name, _, _ := strings.Cut(filepath.Base(path), ".")
	if name == "" {
		name = mjml.Title(content)
	}

	t, err = s.CreateNewTemplate(ctx, content, CreateOptions{Name: name})
	if err != nil {
		return template.Template{}, false, err
	}
	return t, true, nil
}
