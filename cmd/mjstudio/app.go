package mjstudio

import (
	"io"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/actions"
	"github.com/arthur-debert/mjstudio/pkg/compiler"
	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/datastore"
	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/filesystem"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/mailer"
	"github.com/arthur-debert/mjstudio/pkg/notify"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/runner"
	"github.com/arthur-debert/mjstudio/pkg/snapshot"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/arthur-debert/mjstudio/pkg/synthfs"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent root flags
type globalOptions struct {
	verbosity int
	noColor   bool
	home      string
	quiet     bool
	format    string
}

// services replace the external collaborators; nil fields use the real
// implementations
type services struct {
	compiler    compiler.Compiler
	snapshotter snapshot.Snapshotter
	mailer      mailer.Mailer
	dialogs     dialog.Dialogs
}

// app is one command invocation's view of the studio
type app struct {
	studio   *actions.Studio
	store    *state.Store
	paths    paths.Paths
	gateway  datastore.Gateway
	config   *config.Store
	renderer ui.Renderer
	out      io.Writer
}

func (c *cli) resolvePaths() paths.Paths {
	if c.opts.home != "" {
		return paths.NewWithRoot(c.opts.home)
	}
	return paths.New()
}

func (c *cli) outputFormat() (ui.Format, error) {
	f, err := ui.ParseFormat(c.opts.format)
	if err != nil {
		return f, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	if c.opts.noColor && (f == ui.FormatAuto || f == ui.FormatTerminal) {
		f = ui.FormatText
	}
	return f, nil
}

func (c *cli) loadConfig(p paths.Paths) (*config.Store, error) {
	return config.LoadStore(filesystem.NewOS(), config.Sources{
		ConfigFile: p.ConfigFilePath(),
		StateFile:  p.StateFilePath(),
	})
}

// open wires the studio and loads the stored templates. dialogs answers
// the Open and Save prompts of this command.
func (c *cli) open(cmd *cobra.Command, dialogs dialog.Dialogs) (*app, error) {
	logger := logging.GetLogger("cmd.app")
	ctx := cmd.Context()
	done := logging.LogOperationStart(logger, "open studio")
	defer done()

	if c.opts.noColor {
		pterm.DisableColor()
	}

	p := c.resolvePaths()
	fs := filesystem.NewOS()
	cfg, err := c.loadConfig(p)
	if err != nil {
		return nil, err
	}
	settings := cfg.Get()

	format, err := c.outputFormat()
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot create renderer")
	}

	run := runner.New()
	var comp compiler.Compiler = compiler.NewCLI(compiler.OptionsFromConfig(settings.Compiler), run)
	if c.services.compiler != nil {
		comp = c.services.compiler
	}
	var snap snapshot.Snapshotter = snapshot.NewChrome(snapshot.OptionsFromConfig(settings.Snapshot), run, fs, p)
	if c.services.snapshotter != nil {
		snap = c.services.snapshotter
	}
	var mail mailer.Mailer = mailer.NewSender(mailer.ConfigFromSettings(settings.Mail))
	if c.services.mailer != nil {
		mail = c.services.mailer
	}
	if c.services.dialogs != nil {
		dialogs = c.services.dialogs
	}

	// Notifications go to stderr so stdout stays parseable
	notifier := notify.NewTerminalWithWriters(cmd.ErrOrStderr(), cmd.ErrOrStderr()).
		Quiet(c.opts.quiet || format == ui.FormatJSON)

	store := state.NewStore()
	gateway := datastore.New(fs, p, synthfs.NewExecutor())
	studio := actions.New(actions.Deps{
		Store:       store,
		Gateway:     gateway,
		Compiler:    comp,
		Snapshotter: snap,
		Dialogs:     dialogs,
		Notifier:    notifier,
		Mailer:      mail,
		Config:      cfg,
	})

	if err := studio.ReadTemplates(ctx); err != nil {
		return nil, err
	}
	logger.Debug().
		Str("templates", p.TemplatesDir()).
		Int("count", len(store.State().Templates)).
		Msg("Studio opened")

	return &app{
		studio:   studio,
		store:    store,
		paths:    p,
		gateway:  gateway,
		config:   cfg,
		renderer: renderer,
		out:      cmd.OutOrStdout(),
	}, nil
}

// close waits for background saves, deletes and snapshots
func (a *app) close() {
	a.studio.Wait()
}

// resolve finds a template by id, exact name or unique id prefix
func (a *app) resolve(ref string) (template.Template, error) {
	return resolveTemplate(a.store.State().Templates, ref)
}

func resolveTemplate(list []template.Template, ref string) (template.Template, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return template.Template{}, errors.New(errors.ErrInvalidInput, "empty template reference")
	}

	for _, t := range list {
		if t.ID == ref {
			return t, nil
		}
	}

	var byName, byPrefix []template.Template
	for _, t := range list {
		if t.Name == ref {
			byName = append(byName, t)
		}
		if strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
	}

	for _, matches := range [][]template.Template{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			ids := make([]string, len(matches))
			for i, t := range matches {
				ids[i] = t.ID
			}
			return template.Template{}, errors.Newf(errors.ErrInvalidInput,
				"%q matches %d templates: %s", ref, len(matches), strings.Join(ids, ", ")).
				WithDetail("ref", ref)
		}
	}

	return template.Template{}, errors.Newf(errors.ErrNotFound, "no template matches %q", ref).
		WithDetail("ref", ref)
}

// views converts the store into printable rows
func (a *app) views() []ui.TemplateView {
	st := a.store.State()
	out := make([]ui.TemplateView, len(st.Templates))
	for i, t := range st.Templates {
		out[i] = ui.NewTemplateView(t, t.ID == st.Current)
	}
	return out
}
