package integrations

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
)

const (
	EventSubmission = "form.submission"
	EventTest       = "integration.test"
)

type Field struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Payload is what every integration receives for one submission.
type Payload struct {
	Event           string    `json:"event"`
	FormID          string    `json:"form_id"`
	FormTitle       string    `json:"form_title"`
	SubmissionID    uint      `json:"submission_id,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
	RespondentEmail string    `json:"respondent_email,omitempty"`
	Fields          []Field   `json:"fields"`
}

// NewPayload lists the submitted values in the form's element order.
func NewPayload(f form.Form, sub form.Submission) Payload {
	values := sub.Data.Data()
	p := Payload{
		Event:           EventSubmission,
		FormID:          f.ID,
		FormTitle:       f.Title,
		SubmissionID:    sub.ID,
		SubmittedAt:     sub.SubmittedAt,
		RespondentEmail: sub.RespondentEmail,
		Fields:          make([]Field, 0, len(f.Elements)),
	}
	for _, el := range f.Elements {
		field := Field{ID: el.ID, Label: el.Label}
		if v, ok := values[el.ID]; ok {
			field.Value = v.Text()
		}
		p.Fields = append(p.Fields, field)
	}
	return p
}

// TestPayload fills every field with a sample value.
func TestPayload(f form.Form, at time.Time) Payload {
	p := Payload{
		Event:       EventTest,
		FormID:      f.ID,
		FormTitle:   f.Title,
		SubmittedAt: at,
		Fields:      make([]Field, 0, len(f.Elements)),
	}
	for _, el := range f.Elements {
		value := "Sample " + strings.ToLower(el.Label)
		switch {
		case el.Type == form.TypeCheckbox:
			value = form.Bool(true).Text()
		case el.Type.HasOptions() && len(el.Options) > 0:
			value = el.Options[0]
		}
		p.Fields = append(p.Fields, Field{ID: el.ID, Label: el.Label, Value: value})
	}
	return p
}

// Placeholders are the {{key}} substitutions available to custom templates:
// the payload metadata plus every field by id.
func (p Payload) Placeholders() map[string]string {
	vars := map[string]string{
		"event":            p.Event,
		"form_id":          p.FormID,
		"form_title":       p.FormTitle,
		"submission_id":    strconv.FormatUint(uint64(p.SubmissionID), 10),
		"submitted_at":     p.SubmittedAt.UTC().Format(time.RFC3339),
		"respondent_email": p.RespondentEmail,
	}
	for _, f := range p.Fields {
		vars[f.ID] = f.Value
	}
	return vars
}

// Summary renders the payload as plain text for chat and email.
func (p Payload) Summary() string {
	var b strings.Builder
	if p.Event == EventTest {
		fmt.Fprintf(&b, "Test delivery for %q\n", p.FormTitle)
	} else {
		fmt.Fprintf(&b, "New submission for %q\n", p.FormTitle)
	}
	if p.RespondentEmail != "" {
		fmt.Fprintf(&b, "From: %s\n", p.RespondentEmail)
	}
	for _, f := range p.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	return b.String()
}

// Row is the spreadsheet row of the payload.
func (p Payload) Row() []interface{} {
	row := make([]interface{}, 0, len(p.Fields)+2)
	row = append(row, p.SubmittedAt.UTC().Format(time.RFC3339), p.RespondentEmail)
	for _, f := range p.Fields {
		row = append(row, f.Value)
	}
	return row
}
