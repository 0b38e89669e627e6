package integration

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
)

var (
	ErrUnknownType   = errors.New("unknown integration type")
	ErrMissingURL    = errors.New("a valid http(s) url is required")
	ErrMissingEmail  = errors.New("a valid recipient email is required")
	ErrMissingSheet  = errors.New("spreadsheet id is required")
	ErrInvalidMethod = errors.New("method must be POST, PUT or PATCH")
)

// Check verifies that cfg carries what a delivery of type t needs and fills
// in defaults.
func (cfg *Config) Check(t Type) error {
	switch t {
	case TypeWebhook, TypeZapier, TypeCustom, TypeSlack, TypeDiscord:
		u, err := url.Parse(cfg.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrMissingURL
		}
		cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
		switch cfg.Method {
		case "":
			cfg.Method = "POST"
		case "POST", "PUT", "PATCH":
		default:
			return ErrInvalidMethod
		}
	case TypeEmail:
		if _, err := mail.ParseAddress(cfg.Email); err != nil {
			return ErrMissingEmail
		}
	case TypeSheets:
		if strings.TrimSpace(cfg.SpreadsheetID) == "" {
			return ErrMissingSheet
		}
		if cfg.SheetName == "" {
			cfg.SheetName = "Sheet1"
		}
	default:
		return ErrUnknownType
	}
	return nil
}
