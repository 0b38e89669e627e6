package application

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/linskybing/formify-go/internal/assistant"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/utils"
)

var ErrEmptyPrompt = errors.New("describe the form you want to generate")

//go:embed templates/forms.yaml
var formTemplatesYAML string

const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

const generatorPrompt = `You design web forms. Reply with a single JSON object and nothing else:
{"title": string, "description": string, "elements": [{"type": "text|email|textarea|select|radio|checkbox|number", "label": string, "placeholder": string, "required": boolean, "options": [string], "validation": {"min_length": number, "max_length": number, "pattern": string}}]}
Only select and radio elements have options. Use at most 12 elements.`

// FormTemplate is an offline fallback used when no model is available.
type FormTemplate struct {
	Key         string         `json:"key"`
	Keywords    []string       `json:"keywords"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Elements    []form.Element `json:"elements"`
}

// LoadFormTemplates parses a multi-document YAML stream of templates.
func LoadFormTemplates(content string) ([]FormTemplate, error) {
	var out []FormTemplate
	for i, doc := range utils.SplitYAMLDocuments(content) {
		raw, err := utils.YAMLToJSON([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		var t FormTemplate
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errors.New("no form templates defined")
	}
	return out, nil
}

// GeneratorService drafts forms from a prompt and stores them as new drafts.
type GeneratorService struct {
	Forms     *FormService
	AI        assistant.Completer
	Templates []FormTemplate
}

func NewGeneratorService(forms *FormService, ai assistant.Completer) *GeneratorService {
	templates, err := LoadFormTemplates(formTemplatesYAML)
	if err != nil {
		log.Fatalf("[Generator] invalid embedded templates: %v", err)
	}
	return &GeneratorService{Forms: forms, AI: ai, Templates: templates}
}

// MatchTemplate picks the first template whose keywords occur in the prompt,
// or the last template when none match.
func (s *GeneratorService) MatchTemplate(prompt string) FormTemplate {
	lower := strings.ToLower(prompt)
	for _, t := range s.Templates {
		for _, kw := range t.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return t
			}
		}
	}
	return s.Templates[len(s.Templates)-1]
}

// Generate drafts a form for prompt and persists it for the caller. The
// returned source tells whether the model or a template produced it.
func (s *GeneratorService) Generate(ctx context.Context, p session.Principal, prompt string) (*form.Form, string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, "", ErrEmptyPrompt
	}
	if p.UserID == 0 {
		return nil, "", ErrNotAuthenticated
	}

	draft, source := s.draft(ctx, prompt)
	f, err := s.Forms.CreateForm(ctx, p, form.CreateFormDTO{
		Title:       draft.Title,
		Description: draft.Description,
		Elements:    draft.Elements,
	})
	if err != nil {
		return nil, "", err
	}
	return f, source, nil
}

func (s *GeneratorService) draft(ctx context.Context, prompt string) (FormTemplate, string) {
	if s.AI != nil {
		out, err := s.AI.Complete(ctx, generatorPrompt, prompt)
		if err == nil {
			var t FormTemplate
			if t, err = ParseGeneratedForm(out); err == nil {
				return t, SourceAI
			}
		}
		log.Printf("[Generator] falling back to templates: %v", err)
	}
	t := s.MatchTemplate(prompt)
	t.Elements = freshElements(t.Elements)
	return t, SourceTemplate
}

// ParseGeneratedForm reads model output into a draft whose elements satisfy
// the schema invariants. Code fences around the JSON are tolerated.
func ParseGeneratedForm(out string) (FormTemplate, error) {
	out = strings.TrimSpace(out)
	if start, end := strings.Index(out, "{"), strings.LastIndex(out, "}"); start >= 0 && end > start {
		out = out[start : end+1]
	}

	var t FormTemplate
	if err := json.Unmarshal([]byte(out), &t); err != nil {
		return FormTemplate{}, fmt.Errorf("generated form is not valid JSON: %w", err)
	}
	t.Elements = freshElements(t.Elements)
	if strings.TrimSpace(t.Title) == "" || len(t.Elements) == 0 {
		return FormTemplate{}, errors.New("generated form is missing a title or elements")
	}
	return t, nil
}

// freshElements gives every element a new id and repairs the rest with
// form.Normalize.
func freshElements(in []form.Element) []form.Element {
	out := form.CloneElements(in)
	for i := range out {
		out[i].ID = form.NewElementID()
	}
	return form.Normalize(out)
}
