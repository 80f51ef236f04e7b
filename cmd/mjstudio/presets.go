package mjstudio

import (
	"fmt"

	"github.com/arthur-debert/mjstudio/pkg/actions"
	"github.com/arthur-debert/mjstudio/pkg/presets"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/ui"
	"github.com/spf13/cobra"
)

func (c *cli) newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: MsgPresetShort,
	}
	cmd.AddCommand(c.newPresetListCmd(), c.newPresetUseCmd())
	return cmd
}

func (c *cli) newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgPresetListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			r, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			list, err := presets.List()
			if err != nil {
				return err
			}
			fields := make([]ui.Field, len(list))
			for i, p := range list {
				fields[i] = ui.Field{Key: p.Name, Value: p.Title}
			}
			return r.RenderFields("presets", fields)
		},
	}
}

func presetNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	list, err := presets.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name + "\t" + p.Title
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (c *cli) newPresetUseCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:               "use PRESET",
		Short:             MsgPresetUseShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: presetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := presets.Get(args[0])
			if err != nil {
				return err
			}

			a, err := c.open(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			var created template.Template
			if name == "" {
				created, err = a.studio.UsePreset(cmd.Context(), p)
			} else {
				created, err = a.studio.CreateNewTemplate(cmd.Context(), p.MJML, actions.CreateOptions{Name: name})
			}
			if err != nil {
				return err
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgCreated, created.Name, created.ID))
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	return cmd
}
