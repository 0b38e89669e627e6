package form

import (
	"encoding/json"
	"time"
)

type CreateFormDTO struct {
	Title       string    `json:"title" binding:"required,max=200" example:"Contact Form"`
	Description string    `json:"description" binding:"max=2000" example:"Get in touch with us."`
	Elements    []Element `json:"elements"`
}

// UpdateFormDTO replaces the whole element list. Status and PublishedAt are
// only written when present.
type UpdateFormDTO struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Elements    []Element  `json:"elements"`
	Status      *Status    `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
}

// PublishSettings are chosen in the publish dialog.
type PublishSettings struct {
	AllowAnonymous *bool `json:"allow_anonymous"`
	CollectEmails  *bool `json:"collect_emails"`
}

type SubmissionDTO struct {
	Values          map[string]json.RawMessage `json:"values" binding:"required"`
	RespondentEmail string                     `json:"respondent_email" binding:"omitempty,email"`
}

type GenerateFormDTO struct {
	Prompt string `json:"prompt" binding:"required,max=2000" example:"job application for a barista"`
}

type InsertElementDTO struct {
	Type       ElementType `json:"type" binding:"required" example:"text"`
	DropTarget string      `json:"drop_target" example:"canvas"`
}

type ReorderDTO struct {
	SourceID string `json:"source_id" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
}

// ValidationPatch edits constraints; a zero or empty value clears the rule.
type ValidationPatch struct {
	MinLength *int    `json:"min_length"`
	MaxLength *int    `json:"max_length"`
	Pattern   *string `json:"pattern"`
}

// ElementPatch is a partial edit merged into one element.
type ElementPatch struct {
	Label       *string          `json:"label"`
	Placeholder *string          `json:"placeholder"`
	Required    *bool            `json:"required"`
	Validation  *ValidationPatch `json:"validation"`
}

type OptionDTO struct {
	Value string `json:"value" binding:"required,max=200"`
}

type HeaderDTO struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type OpenSessionDTO struct {
	FormID string `json:"form_id"`
}

type SelectDTO struct {
	ElementID string `json:"element_id"`
}
