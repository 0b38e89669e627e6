package form

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ElementType string

const (
	TypeText     ElementType = "text"
	TypeEmail    ElementType = "email"
	TypeTextarea ElementType = "textarea"
	TypeSelect   ElementType = "select"
	TypeRadio    ElementType = "radio"
	TypeCheckbox ElementType = "checkbox"
	TypeNumber   ElementType = "number"
)

// Valid reports whether t is one of the palette element types.
func (t ElementType) Valid() bool {
	switch t {
	case TypeText, TypeEmail, TypeTextarea, TypeSelect, TypeRadio, TypeCheckbox, TypeNumber:
		return true
	}
	return false
}

// HasOptions reports whether elements of this type carry an option list.
func (t ElementType) HasOptions() bool {
	return t == TypeSelect || t == TypeRadio
}

// SupportsLength reports whether min/max length constraints apply.
func (t ElementType) SupportsLength() bool {
	return t == TypeText || t == TypeTextarea
}

// SupportsPattern reports whether a regular expression constraint applies.
func (t ElementType) SupportsPattern() bool {
	return t == TypeText
}

type Status string

const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusUnpublished Status = "unpublished"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusUnpublished
}

// Validation holds optional constraints; zero values mean "not set".
type Validation struct {
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

func (v *Validation) empty() bool {
	return v == nil || (v.MinLength == 0 && v.MaxLength == 0 && v.Pattern == "")
}

type Element struct {
	ID          string      `json:"id"`
	Type        ElementType `json:"type"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required"`
	Options     []string    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Options != nil {
		out.Options = append([]string(nil), e.Options...)
	}
	if e.Validation != nil {
		v := *e.Validation
		out.Validation = &v
	}
	return out
}

// Form is the schema of one form. An empty ID means the form has not been
// persisted yet.
type Form struct {
	ID             string                       `json:"id" gorm:"primaryKey;type:varchar(64)"`
	OwnerID        uint                         `json:"owner_id" gorm:"index"`
	Title          string                       `json:"title"`
	Description    string                       `json:"description"`
	Elements       datatypes.JSONSlice[Element] `json:"elements" gorm:"type:jsonb"`
	Status         Status                       `json:"status" gorm:"type:varchar(16);index"`
	PublishedAt    *time.Time                   `json:"published_at,omitempty"`
	ShareURL       string                       `json:"share_url,omitempty"`
	EmbedCode      string                       `json:"embed_code,omitempty" gorm:"type:text"`
	AllowAnonymous bool                         `json:"allow_anonymous"`
	CollectEmails  bool                         `json:"collect_emails"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
	DeletedAt      gorm.DeletedAt               `json:"-" gorm:"index"`
}

// HasIdentity reports whether the form has been persisted.
func (f *Form) HasIdentity() bool {
	return f.ID != ""
}

// IndexOf returns the index of the element with the given id, or -1.
func (f *Form) IndexOf(id string) int {
	for i := range f.Elements {
		if f.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand to another goroutine.
func (f *Form) Clone() *Form {
	out := *f
	out.Elements = CloneElements(f.Elements)
	if f.PublishedAt != nil {
		t := *f.PublishedAt
		out.PublishedAt = &t
	}
	return &out
}

func CloneElements(in []Element) []Element {
	if in == nil {
		return nil
	}
	out := make([]Element, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Submission is one recorded response to a published form.
type Submission struct {
	ID              uint                       `json:"id" gorm:"primaryKey"`
	FormID          string                     `json:"form_id" gorm:"type:varchar(64);index"`
	SubmittedBy     *uint                      `json:"submitted_by,omitempty"`
	RespondentEmail string                     `json:"respondent_email,omitempty"`
	Data            datatypes.JSONType[Values] `json:"data" gorm:"type:jsonb"`
	SubmittedAt     time.Time                  `json:"submitted_at" gorm:"index"`
}

// ShareURL derives the public link of a form.
func ShareURL(origin, id string) string {
	return origin + "/forms/" + id
}

// EmbedCode derives the iframe snippet embedding a share URL.
func EmbedCode(shareURL string) string {
	return fmt.Sprintf(`<iframe src="%s?embed=true" width="100%%" height="600" frameborder="0"></iframe>`, shareURL)
}
