package state

import "github.com/arthur-debert/mjstudio/pkg/template"

// Route names a view of the application
type Route string

const (
	RouteHome   Route = "home"
	RouteEditor Route = "editor"
)

// Action is a state transition handled by Reduce
type Action interface {
	isAction()
}

// ReceiveTemplates replaces the collection with loaded templates
type ReceiveTemplates struct {
	Templates []template.Template
}

// SetTemplate selects the current template. An empty ID clears it.
type SetTemplate struct {
	ID string
}

// TemplateCreated appends a new template
type TemplateCreated struct {
	Template template.Template
}

// TemplateDeleted removes a template by id
type TemplateDeleted struct {
	ID string
}

// UpdateTemplate replaces the template with the given id by Updater(t)
type UpdateTemplate struct {
	ID      string
	Updater template.Updater
}

// UpdateCurrentTemplate applies Updater to the current template
type UpdateCurrentTemplate struct {
	Updater template.Updater
}

// Navigate changes the current route
type Navigate struct {
	Route Route
}

func (ReceiveTemplates) isAction()      {}
func (SetTemplate) isAction()           {}
func (TemplateCreated) isAction()       {}
func (TemplateDeleted) isAction()       {}
func (UpdateTemplate) isAction()        {}
func (UpdateCurrentTemplate) isAction() {}
func (Navigate) isAction()              {}
