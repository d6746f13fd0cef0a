package core

import (
	"bytes"
	"errors"
	"html/template"
)

// Deps holds the dependencies for constructing the core template func map.
type Deps struct {
	// Template points at the parsed set so renderSection can execute siblings.
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns the template helpers shared by every page.
func Funcs(deps Deps) template.FuncMap {
	return template.FuncMap{
		"sectionTmpl": deps.ContentTemplateFor,
		"renderSection": func(page string, data any) (template.HTML, error) {
			if deps.Template == nil || *deps.Template == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - output of our own html/template set; values were escaped during execution.
			return template.HTML(buf.String()), nil
		},
	}
}
