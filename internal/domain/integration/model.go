package integration

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeWebhook Type = "webhook"
	TypeEmail   Type = "email"
	TypeZapier  Type = "zapier"
	TypeSlack   Type = "slack"
	TypeDiscord Type = "discord"
	TypeCustom  Type = "custom"
	TypeSheets  Type = "sheets"
)

func (t Type) Valid() bool {
	switch t {
	case TypeWebhook, TypeEmail, TypeZapier, TypeSlack, TypeDiscord, TypeCustom, TypeSheets:
		return true
	}
	return false
}

type Status string

const (
	StatusActive  Status = "active"
	StatusError   Status = "error"
	StatusPending Status = "pending"
)

// Config is the per-type delivery configuration. Only the fields relevant to
// the integration's type are used.
type Config struct {
	URL           string            `json:"url,omitempty"`
	APIKey        string            `json:"api_key,omitempty"`
	Email         string            `json:"email,omitempty"`
	Template      string            `json:"template,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Method        string            `json:"method,omitempty"`
	SpreadsheetID string            `json:"spreadsheet_id,omitempty"`
	SheetName     string            `json:"sheet_name,omitempty"`
}

type Integration struct {
	ID            uint                       `gorm:"primaryKey" json:"id"`
	FormID        string                     `gorm:"type:varchar(64);index;not null" json:"form_id"`
	OwnerID       uint                       `gorm:"index;not null" json:"owner_id"`
	Name          string                     `gorm:"size:100;not null" json:"name"`
	Type          Type                       `gorm:"type:varchar(16);not null" json:"type"`
	Enabled       bool                       `json:"enabled"`
	Config        datatypes.JSONType[Config] `gorm:"type:jsonb" json:"config"`
	LastTriggered *time.Time                 `json:"last_triggered,omitempty"`
	Status        Status                     `gorm:"type:varchar(16);not null" json:"status"`
	LastError     string                     `json:"last_error,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}
