package actions

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/htmlfmt"
	"github.com/arthur-debert/mjstudio/pkg/mailer"
	"github.com/arthur-debert/mjstudio/pkg/mjml"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

// Notification texts
const (
	MsgSaved    = "Saved!"
	MsgNotSaved = "Not Saved!"
	MsgSent     = "Sent!"
	MsgNotSent  = "Not Sent!"
)

// ExportRequest names the template and the format to export
type ExportRequest struct {
	Template template.Template
	Type     template.Format
}

// ExportPath appends the format extension unless path already has it
func ExportPath(path string, f template.Format) string {
	if filepath.Ext(path) != f.Ext() {
		return path + f.Ext()
	}
	return path
}

// ExportTemplate asks where to save the template and writes it there.
// It returns the written path, or "" when the dialog was cancelled. The
// chosen directory is remembered for the next export.
func (s *Studio) ExportTemplate(ctx context.Context, req ExportRequest) (string, error) {
	if _, ok := template.ParseFormat(string(req.Type)); !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot export as %q", req.Type)
	}

	fileName := req.Template.FileName(req.Type)
	defaultPath := fileName
	if last := s.config.LastFolder(); last != "" {
		defaultPath = filepath.Join(last, fileName)
	}

	chosen, ok, err := s.dialogs.Save(ctx, defaultPath)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDialog, "save dialog failed")
	}
	if !ok {
		return "", nil
	}

	target := ExportPath(chosen, req.Type)
	content := req.Template.MJML
	if req.Type == template.FormatHTML {
		content = s.HTMLOutput(req.Template)
	}

	writeErr := s.gateway.WriteFile(ctx, target, content)
	if writeErr != nil {
		s.logger.Error().Err(writeErr).Str("path", target).Msg("Export failed")
		s.notifier.Error(MsgNotSaved)
	} else {
		s.notifier.Notify(MsgSaved)
	}

	if folder := filepath.Dir(chosen); folder != "" && folder != "." {
		if err := s.config.SetLastFolder(folder); err != nil {
			s.logger.Warn().Err(err).Str("folder", folder).Msg("Cannot remember export folder")
		}
	}

	if writeErr != nil {
		return "", errors.Wrapf(writeErr, errors.ErrExport, "cannot export to %s", target).
			WithDetail("path", target)
	}
	return target, nil
}

// HTMLOutput returns the template HTML, beautified when export.beautify
// is set
func (s *Studio) HTMLOutput(t template.Template) string {
	if s.config.Get().Export.Beautify {
		return htmlfmt.Beautify(t.HTML)
	}
	return t.HTML
}

// SendOptions address a test email
type SendOptions struct {
	To []string
	// Subject defaults to the <mj-title> of the template, then its name.
	Subject string
}

// SendTemplate emails the rendered template with a plain-text alternative
func (s *Studio) SendTemplate(ctx context.Context, t template.Template, opts SendOptions) error {
	if s.mailer == nil {
		return errors.New(errors.ErrSend, "mail is not configured")
	}

	subject := opts.Subject
	if subject == "" {
		subject = mjml.Title(t.MJML)
	}
	if subject == "" {
		subject = t.Name
	}

	err := s.mailer.Send(ctx, mailer.Message{
		To:       opts.To,
		Subject:  subject,
		TextBody: htmlfmt.Text(t.HTML),
		HTMLBody: t.HTML,
	})
	if err != nil {
		s.notifier.Error(MsgNotSent)
		return err
	}
	s.notifier.Notify(MsgSent)
	return nil
}
