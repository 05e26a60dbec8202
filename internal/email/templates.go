package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var builtinTemplates = map[string]string{
	TemplateNewApplication: `<p>Hello {{.RecipientName}},</p>
<p><strong>{{.ApplicantName}}</strong> applied to your gig "{{.GigTitle}}".</p>
<p>Open Tujitume to review the application.</p>`,

	TemplateApplicationStatus: `<p>Hello {{.RecipientName}},</p>
{{if .Accepted}}<p>Good news! You have been selected for the gig "{{.GigTitle}}".</p>
{{else}}<p>Your application for the gig "{{.GigTitle}}" was not selected this time.</p>
{{end}}`,

	TemplateGigCompleted: `<p>Hello {{.RecipientName}},</p>
<p>The gig "{{.GigTitle}}" has been marked as completed. You can now leave a review.</p>`,
}

// TemplateManager хранит разобранные html-шаблоны писем
type TemplateManager struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{templates: make(map[string]*template.Template)}
}

// NewDefaultTemplateManager - менеджер со встроенными шаблонами.
// Файлы <name>.html из dir (если задан) перекрывают встроенные.
func NewDefaultTemplateManager(dir string) (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("built-in template %s: %w", name, err)
		}
	}
	if dir != "" {
		if err := tm.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mu.RLock()
	tpl, ok := tm.templates[templateName]
	tm.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", templateName, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, body string) error {
	// отсутствующий ключ в данных - ошибка, а не пустая строка в письме
	tpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}

	tm.mu.Lock()
	tm.templates[name] = tpl
	tm.mu.Unlock()
	return nil
}

// LoadDir читает *.html из dir (без подкаталогов)
func (tm *TemplateManager) LoadDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(name, string(content)); err != nil {
			return err
		}
	}
	return nil
}

// Names - имена загруженных шаблонов по алфавиту
func (tm *TemplateManager) Names() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
