package mjstudio

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/mjstudio/pkg/actions"
	"github.com/arthur-debert/mjstudio/pkg/dialog"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/spf13/cobra"
)

func (c *cli) newHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "html TEMPLATE",
		Short:             MsgHTMLShort,
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
			_, err = fmt.Fprint(a.out, a.studio.HTMLOutput(t))
			return err
		},
	}
}

// exportDialogs picks how the destination is chosen: a fixed path, the
// default path, or a prompt when stdin is a terminal
func exportDialogs(output string, yes bool) dialog.Dialogs {
	if output != "" || yes || !stdinIsTerminal() {
		return dialog.Static{SavePath: paths.ExpandHome(output), AcceptDefault: yes}
	}
	return dialog.NewInteractive()
}

func (c *cli) newExportCmd() *cobra.Command {
	var typ, output string
	var yes bool

	cmd := &cobra.Command{
		Use:               "export TEMPLATE",
		Short:             MsgExportShort,
		Long:              MsgExportLong,
		Example:           MsgExportExample,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := template.ParseFormat(typ)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, "unknown export type %q, expected html or mjml", typ)
			}

			a, err := c.open(cmd, exportDialogs(output, yes))
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			written, err := a.studio.ExportTemplate(cmd.Context(), actions.ExportRequest{Template: t, Type: format})
			if err != nil {
				return err
			}
			if written == "" {
				return a.renderer.RenderMessage(MsgCancelled)
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgExported, written))
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", string(template.FormatHTML), MsgFlagType)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{string(template.FormatHTML), string(template.FormatMJML)}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func (c *cli) newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "snapshot TEMPLATE",
		Short:             MsgSnapshotShort,
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
			if err := a.studio.MakeSnapshot(cmd.Context(), t).Await(); err != nil {
				return errors.Wrapf(err, errors.ErrSnapshot, "cannot render thumbnail of %s", t.Name)
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgSnapshotDone, a.paths.ThumbnailPath(t.ID)))
		},
	}
}

func (c *cli) newScreenshotCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:               "screenshot TEMPLATE",
		Short:             MsgScreenshotShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := filepath.Abs(paths.ExpandHome(dir))
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %s", dir)
			}

			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			written, err := a.studio.Screenshot(cmd.Context(), t, target)
			if err != nil {
				return err
			}
			for _, p := range written {
				if err := a.renderer.RenderMessage(fmt.Sprintf(MsgScreenshot, p)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", MsgFlagDir)
	return cmd
}

func (c *cli) newSendCmd() *cobra.Command {
	var to []string
	var subject string

	cmd := &cobra.Command{
		Use:               "send TEMPLATE",
		Short:             MsgSendShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.templateRefs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(to) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoRecipient)
			}

			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			t, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			return a.studio.SendTemplate(cmd.Context(), t, actions.SendOptions{To: to, Subject: subject})
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, MsgFlagTo)
	cmd.Flags().StringVarP(&subject, "subject", "s", "", MsgFlagSubject)
	return cmd
}
