package mjstudio

import (
	"embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "A local MJML email template studio"
	MsgListShort       = "List templates"
	MsgNewShort        = "Create a template"
	MsgImportShort     = "Import an .mjml file as a new template"
	MsgShowShort       = "Show a template"
	MsgHTMLShort       = "Print the rendered HTML of a template"
	MsgSetMJMLShort    = "Replace the MJML of a template"
	MsgRenameShort     = "Rename a template"
	MsgDuplicateShort  = "Copy a template as <name>_copy"
	MsgDeleteShort     = "Delete templates"
	MsgExportShort     = "Export a template as MJML or HTML"
	MsgSnapshotShort   = "Render the thumbnail of a template"
	MsgScreenshotShort = "Save mobile and desktop screenshots of a template"
	MsgSendShort       = "Send a template as a test email"
	MsgPresetShort     = "Work with starter templates"
	MsgPresetListShort = "List presets"
	MsgPresetUseShort  = "Create a template from a preset"
	MsgConfigShort     = "Inspect configuration"
	MsgConfigPathShort = "Show the directories and files mjstudio uses"
	MsgConfigShowShort = "Show the configuration in effect"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgCreated      = "Created %s (%s)"
	MsgImported     = "Imported %s as %s (%s)"
	MsgUpdated      = "Updated %s"
	MsgRenamed      = "Renamed %s to %s"
	MsgExported     = "Exported to %s"
	MsgSnapshotDone = "Thumbnail written to %s"
	MsgScreenshot   = "Wrote %s"
	MsgCancelled    = "Cancelled."

	MsgErrNotImported = "%s was not imported: only .mjml files can be imported"
	MsgErrNoMarkup    = "no markup given: use --file PATH or --file - for stdin"
	MsgErrNoRecipient = "no recipient: use --to ADDRESS"

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagHome    = "Keep data, config, state and cache under this directory"
	MsgFlagQuiet   = "Do not print notifications"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagName    = "Template name"
	MsgFlagFile    = "Read MJML from this file (- for stdin)"
	MsgFlagType    = "Export type: html or mjml"
	MsgFlagOutput  = "Destination path"
	MsgFlagYes     = "Accept the default destination without asking"
	MsgFlagDir     = "Directory for the screenshots"
	MsgFlagTo      = "Recipient address (repeatable)"
	MsgFlagSubject = "Subject; defaults to the template title, then its name"
	MsgFlagMJML    = "Include the MJML source"
	MsgFlagNoSnap  = "Do not render a thumbnail"
)

//go:embed topics
var topicsFS embed.FS

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/new-example.txt
	msgNewExampleRaw string
	MsgNewExample    = strings.TrimRight(msgNewExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
