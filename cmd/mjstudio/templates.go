package mjstudio

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/arthur-debert/mjstudio/pkg/actions"
	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/ui"
	"github.com/spf13/cobra"
)

// readMarkup reads --file through the gateway; "-" is stdin
func (a *app) readMarkup(cmd *cobra.Command, file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, errors.ErrPersistRead, "cannot read stdin")
		}
		return string(data), nil
	}
	return a.gateway.ReadFile(cmd.Context(), file)
}

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()
			return a.renderer.RenderTemplates(a.views())
		},
	}
}

func (c *cli) newNewCmd() *cobra.Command {
	var name, file string

	cmd := &cobra.Command{
		Use:     "new",
		Short:   MsgNewShort,
		Example: MsgNewExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			markup := ""
			if file != "" {
				if markup, err = a.readMarkup(cmd, file); err != nil {
					return err
				}
			}

			t, err := a.studio.CreateNewTemplate(cmd.Context(), markup, actions.CreateOptions{Name: name})
			if err != nil {
				return err
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgCreated, t.Name, t.ID))
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	return cmd
}

func (c *cli) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.mjml",
		Short: MsgImportShort,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"mjml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(paths.ExpandHome(args[0]))
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", args[0])
			}

			a, err := c.open(cmd, dialog.Static{OpenPath: path})
			if err != nil {
				return err
			}
			defer a.close()

			t, ok, err := a.studio.Open(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgErrNotImported, args[0])
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgImported, args[0], t.Name, t.ID))
		},
	}
}

func (c *cli) newShowCmd() *cobra.Command {
	var withMJML bool

	cmd := &cobra.Command{
		Use:               "show TEMPLATE",
		Short:             MsgShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			v := ui.NewTemplateView(t, t.ID == a.store.State().Current)
			if withMJML {
				v.MJML = t.MJML
			}
			return a.renderer.RenderTemplate(v)
		},
	}
	cmd.Flags().BoolVar(&withMJML, "mjml", false, MsgFlagMJML)
	return cmd
}

func (c *cli) newSetMJMLCmd() *cobra.Command {
	var file string
	var noSnapshot bool

	cmd := &cobra.Command{
		Use:               "set-mjml TEMPLATE",
		Short:             MsgSetMJMLShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoMarkup)
			}
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			markup, err := a.readMarkup(cmd, file)
			if err != nil {
				return err
			}

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.studio.SetTemplate(t.ID); err != nil {
				return err
			}
			if err := a.studio.UpdateCurrentTemplate(cmd.Context(), template.SetMJML(markup)); err != nil {
				return err
			}
			if !noSnapshot {
				if updated, ok := a.store.Find(t.ID); ok {
					a.studio.MakeSnapshot(cmd.Context(), updated)
				}
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgUpdated, t.Name))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	cmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, MsgFlagNoSnap)
	return cmd
}

func (c *cli) newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rename TEMPLATE NAME",
		Short:             MsgRenameShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.studio.SetTemplate(t.ID); err != nil {
				return err
			}
			if err := a.studio.UpdateCurrentTemplate(cmd.Context(), template.Rename(args[1])); err != nil {
				return err
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgRenamed, t.Name, args[1]))
		},
	}
}

func (c *cli) newDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "duplicate TEMPLATE",
		Aliases:           []string{"dup"},
		Short:             MsgDuplicateShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			dup, err := a.studio.DuplicateTemplate(cmd.Context(), t)
			if err != nil {
				return err
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgCreated, dup.Name, dup.ID))
		},
	}
}

func (c *cli) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "delete TEMPLATE...",
		Aliases:           []string{"rm"},
		Short:             MsgDeleteShort,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			// Resolve everything first so a bad reference deletes nothing
			targets := make([]template.Template, 0, len(args))
			for _, ref := range args {
				t, err := a.resolve(ref)
				if err != nil {
					return err
				}
				targets = append(targets, t)
			}

			var failed error
			for _, t := range targets {
				if err := a.studio.DeleteTemplate(cmd.Context(), t).Await(); err != nil && failed == nil {
					failed = err
				}
			}
			return failed
		},
	}
}
