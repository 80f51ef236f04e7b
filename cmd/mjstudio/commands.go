package mjstudio

import (
	"fmt"

	"github.com/arthur-debert/mjstudio/internal/version"
	"github.com/arthur-debert/mjstudio/pkg/cobrax/topics"
	"github.com/arthur-debert/mjstudio/pkg/datastore"
	"github.com/arthur-debert/mjstudio/pkg/filesystem"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cli carries the root flags and the collaborators shared by commands
type cli struct {
	opts     globalOptions
	services services
}

// NewRootCmd creates the mjstudio command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(services{})
}

func newRootCmd(svc services) *cobra.Command {
	initTemplateFormatting()

	c := &cli{services: svc}

	rootCmd := &cobra.Command{
		Use:     "mjstudio",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{
				Verbosity: c.opts.verbosity,
				LogFile:   c.resolvePaths().LogFilePath(),
				Console:   cmd.ErrOrStderr(),
				NoColor:   c.opts.noColor,
			})
			log.Debug().Str("command", cmd.CommandPath()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&c.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&c.opts.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringVar(&c.opts.home, "home", "", MsgFlagHome)
	flags.BoolVarP(&c.opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	flags.StringVar(&c.opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(
		&cobra.Group{ID: "templates", Title: "TEMPLATES:"},
		&cobra.Group{ID: "output", Title: "OUTPUT:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	for _, cmd := range []*cobra.Command{
		c.newListCmd(),
		c.newNewCmd(),
		c.newImportCmd(),
		c.newShowCmd(),
		c.newSetMJMLCmd(),
		c.newRenameCmd(),
		c.newDuplicateCmd(),
		c.newDeleteCmd(),
		c.newPresetCmd(),
	} {
		cmd.GroupID = "templates"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.newHTMLCmd(),
		c.newExportCmd(),
		c.newSnapshotCmd(),
		c.newScreenshotCmd(),
		c.newSendCmd(),
	} {
		cmd.GroupID = "output"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.newConfigCmd(),
		c.newVersionCmd(),
		c.newCompletionCmd(),
	} {
		cmd.GroupID = "misc"
		rootCmd.AddCommand(cmd)
	}

	renderer := topics.NewGlamourRenderer()
	if !stdoutIsTerminal() {
		renderer = topics.NewPlainGlamourRenderer()
	}
	if _, err := topics.Initialize(rootCmd, topicsFS, topics.Options{Renderer: renderer}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// templateRefs completes template ids, described by name
func (c *cli) templateRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	gw := datastore.New(filesystem.NewOS(), c.resolvePaths(), nil)
	docs, err := gw.ReadTemplates(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID+"\t"+d.Name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mjstudio version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func (c *cli) newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
