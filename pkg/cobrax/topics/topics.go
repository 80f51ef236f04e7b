// Package topics adds file-based help topics to a Cobra command tree.
// Topics are read from an fs.FS, usually an embedded directory, and shown
// with "<app> help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager holds the topics of one command tree
type TopicManager struct {
	source       fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format returns the file extension, used to pick the rendering
func (t *Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures the TopicManager
type Options struct {
	// Extensions defaults to [".txt", ".md"]
	Extensions []string
	// Renderer defaults to Plain
	Renderer Renderer
}

// New loads topics from source
func New(source fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		source:     source,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = Plain
	}
	if err := tm.scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return tm, nil
}

func (tm *TopicManager) scan() error {
	return fs.WalkDir(tm.source, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}
		content, err := fs.ReadFile(tm.source, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, e := range tm.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// GetTopic finds a topic by name. Flag-style names ("--home") also match
// "option-home".
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics["option-"+name]
	return topic, ok
}

// ListTopics returns topic names in order
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic formatted by the configured renderer
func (tm *TopicManager) Render(t *Topic) string {
	return tm.renderer.Render(t.Content, t.Format())
}

// WriteIndex prints the list of topics for "help topics"
func (tm *TopicManager) WriteIndex(w io.Writer, app string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
}

// Initialize replaces the help command of root with one that also knows
// the topics in source
func Initialize(root *cobra.Command, source fs.FS, opts Options) (*TopicManager, error) {
	tm, err := New(source, opts)
	if err != nil {
		return nil, err
	}
	tm.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tm.originalHelp(root, []string{})
				return
			}
			if args[0] == "topics" {
				tm.WriteIndex(out, root.Name())
				return
			}
			if topic, ok := tm.GetTopic(args[0]); ok {
				fmt.Fprint(out, tm.Render(topic))
				return
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				tm.originalHelp(root, args)
				return
			}
			tm.originalHelp(target, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := tm.GetTopic(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
				return
			}
		}
		tm.originalHelp(cmd, args)
	})

	return tm, nil
}
