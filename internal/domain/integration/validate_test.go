package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCheck(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		cfg  Config
		want error
	}{
		{"webhook ok", TypeWebhook, Config{URL: "https://hooks.example.com/x"}, nil},
		{"webhook bad scheme", TypeWebhook, Config{URL: "ftp://example.com"}, ErrMissingURL},
		{"slack missing url", TypeSlack, Config{}, ErrMissingURL},
		{"custom bad method", TypeCustom, Config{URL: "http://example.com", Method: "DELETE"}, ErrInvalidMethod},
		{"email ok", TypeEmail, Config{Email: "ops@example.com"}, nil},
		{"email bad", TypeEmail, Config{Email: "nope"}, ErrMissingEmail},
		{"sheets missing id", TypeSheets, Config{}, ErrMissingSheet},
		{"unknown", Type("fax"), Config{}, ErrUnknownType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.Check(tc.typ)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestConfigCheckDefaults(t *testing.T) {
	cfg := Config{URL: "https://example.com/hook", Method: "put"}
	assert.NoError(t, cfg.Check(TypeZapier))
	assert.Equal(t, "PUT", cfg.Method)

	cfg = Config{URL: "https://example.com/hook"}
	assert.NoError(t, cfg.Check(TypeWebhook))
	assert.Equal(t, "POST", cfg.Method)

	sheet := Config{SpreadsheetID: "abc"}
	assert.NoError(t, sheet.Check(TypeSheets))
	assert.Equal(t, "Sheet1", sheet.SheetName)
}
