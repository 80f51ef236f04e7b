package mjstudio

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/ui"
	"github.com/spf13/cobra"
)

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}
	cmd.AddCommand(c.newConfigPathCmd(), c.newConfigShowCmd())
	return cmd
}

func (c *cli) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := c.outputFormat()
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func (c *cli) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.renderer(cmd)
			if err != nil {
				return err
			}
			p := c.resolvePaths()
			return r.RenderFields("paths", []ui.Field{
				{Key: "templates", Value: p.TemplatesDir()},
				{Key: "thumbnails", Value: p.ThumbnailsDir()},
				{Key: "config", Value: p.ConfigFilePath()},
				{Key: "state", Value: p.StateFilePath()},
				{Key: "log", Value: p.LogFilePath()},
				{Key: "cache", Value: p.CacheDir()},
			})
		},
	}
}

func (c *cli) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.renderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig(c.resolvePaths())
			if err != nil {
				return err
			}
			return r.RenderFields("config", configFields(cfg.Get()))
		},
	}
}

// configFields flattens cfg into dotted keys. The mail password is masked.
func configFields(cfg config.Config) []ui.Field {
	password := ""
	if cfg.Mail.Password != "" {
		password = "********"
	}
	b := strconv.FormatBool
	i := strconv.Itoa
	return []ui.Field{
		{Key: "compiler.binary", Value: cfg.Compiler.Binary},
		{Key: "compiler.args", Value: strings.Join(cfg.Compiler.Args, " ")},
		{Key: "compiler.validation_level", Value: cfg.Compiler.ValidationLevel},
		{Key: "compiler.minify", Value: b(cfg.Compiler.Minify)},
		{Key: "compiler.timeout", Value: cfg.Compiler.Timeout.String()},
		{Key: "snapshot.binary", Value: cfg.Snapshot.Binary},
		{Key: "snapshot.width", Value: i(cfg.Snapshot.Width)},
		{Key: "snapshot.height", Value: i(cfg.Snapshot.Height)},
		{Key: "snapshot.timeout", Value: cfg.Snapshot.Timeout.String()},
		{Key: "preview.mobile_width", Value: i(cfg.Preview.MobileWidth)},
		{Key: "preview.desktop_width", Value: i(cfg.Preview.DesktopWidth)},
		{Key: "export.beautify", Value: b(cfg.Export.Beautify)},
		{Key: "export.last_folder", Value: cfg.Export.LastFolder},
		{Key: "mail.host", Value: cfg.Mail.Host},
		{Key: "mail.port", Value: i(cfg.Mail.Port)},
		{Key: "mail.username", Value: cfg.Mail.Username},
		{Key: "mail.password", Value: password},
		{Key: "mail.from", Value: cfg.Mail.From},
		{Key: "mail.from_name", Value: cfg.Mail.FromName},
		{Key: "mail.use_tls", Value: b(cfg.Mail.UseTLS)},
		{Key: "mail.use_ssl", Value: b(cfg.Mail.UseSSL)},
		{Key: "mail.timeout", Value: cfg.Mail.Timeout.String()},
	}
}
