package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов
const (
	TemplateApplicationReceived = "application_received"
	TemplateApplicationStatus   = "application_status"
	TemplateWelcome             = "welcome"
)

var builtinTemplates = map[string]string{
	TemplateWelcome: `
<h2>Welcome to WorkLink, {{.Name}}!</h2>
<p>Your account has been created. You can now
{{if eq .Role "employer"}}post jobs and review applications{{else}}search jobs and apply{{end}}.</p>`,

	TemplateApplicationReceived: `
<h2>New application for "{{.JobTitle}}"</h2>
<p>{{.CandidateName}} has applied to your job posting.</p>
<p>Log in to review the application.</p>`,

	TemplateApplicationStatus: `
<h2>Your application was updated</h2>
<p>The status of your application for "{{.JobTitle}}" is now <b>{{.Status}}</b>.</p>`,
}

// TemplateManager хранит распарсенные шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Встроенные шаблоны валидны по построению
		if err := tm.AddTemplate(name, body); err != nil {
			panic(fmt.Sprintf("invalid builtin email template %s: %v", name, err))
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
