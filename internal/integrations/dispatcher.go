package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linskybing/formify-go/internal/domain/integration"
	"github.com/linskybing/formify-go/pkg/utils"
)

var (
	ErrDeliveryFailed      = errors.New("integration endpoint rejected the delivery")
	ErrMailerNotConfigured = errors.New("email delivery is not configured")
	ErrSheetsNotConfigured = errors.New("google sheets is not configured")
	ErrTemplateNotJSON     = errors.New("template must be a JSON document")
	errUnsupportedType     = errors.New("unsupported integration type")
)

// Dispatcher delivers payloads to the destination of an integration.
type Dispatcher struct {
	HTTP   *http.Client
	Mailer Mailer
	Sheets SheetsClient
}

func NewDispatcher(mailer Mailer, sheets SheetsClient) *Dispatcher {
	return &Dispatcher{
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		Mailer: mailer,
		Sheets: sheets,
	}
}

// Send delivers p through in. The integration's config is checked first, so
// a misconfigured integration fails without network traffic.
func (d *Dispatcher) Send(ctx context.Context, in integration.Integration, p Payload) error {
	cfg := in.Config.Data()
	if err := cfg.Check(in.Type); err != nil {
		return err
	}

	switch in.Type {
	case integration.TypeWebhook, integration.TypeZapier, integration.TypeCustom:
		body, err := webhookBody(cfg, p)
		if err != nil {
			return err
		}
		return d.post(ctx, cfg, body)
	case integration.TypeSlack:
		body, _ := json.Marshal(map[string]string{"text": p.Summary()})
		return d.post(ctx, cfg, body)
	case integration.TypeDiscord:
		body, _ := json.Marshal(map[string]string{"content": p.Summary()})
		return d.post(ctx, cfg, body)
	case integration.TypeEmail:
		if d.Mailer == nil {
			return ErrMailerNotConfigured
		}
		body := p.Summary()
		if cfg.Template != "" {
			body = utils.ReplacePlaceholders(cfg.Template, p.Placeholders())
		}
		return d.Mailer.Send(ctx, cfg.Email, "New response: "+p.FormTitle, body)
	case integration.TypeSheets:
		if d.Sheets == nil {
			return ErrSheetsNotConfigured
		}
		return d.Sheets.Append(ctx, cfg.SpreadsheetID, cfg.SheetName+"!A1", [][]interface{}{p.Row()})
	}
	return fmt.Errorf("%w: %s", errUnsupportedType, in.Type)
}

// webhookBody is the JSON payload, or the configured template with
// {{key}} placeholders filled in.
func webhookBody(cfg integration.Config, p Payload) ([]byte, error) {
	if strings.TrimSpace(cfg.Template) == "" {
		return json.Marshal(p)
	}
	out, err := utils.ReplacePlaceholdersInJSON(cfg.Template, p.Placeholders())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotJSON, err)
	}
	return []byte(out), nil
}

func (d *Dispatcher) post(ctx context.Context, cfg integration.Config, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "formify-integrations/1.0")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	client := d.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrDeliveryFailed, cfg.URL, resp.StatusCode)
	}
	return nil
}
