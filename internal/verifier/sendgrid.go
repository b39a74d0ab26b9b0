package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/sendgrid/sendgrid-go"

	"github.com/Nevelin-W/managment-monorepo/internal/config"
)

// SendGridVerifier validates addresses through the SendGrid email
// validation API. Domains on the whitelist skip the network call entirely.
type SendGridVerifier struct {
	Host      string
	APIKey    string
	Whitelist []string
}

func NewSendGridVerifier(cfg *config.Config) *SendGridVerifier {
	wl := make([]string, 0, len(cfg.EmailVerificationWhitelist))
	for _, d := range cfg.EmailVerificationWhitelist {
		wl = append(wl, strings.ToLower(strings.TrimSpace(d)))
	}
	return &SendGridVerifier{
		Host:      cfg.SendGridAPIHost,
		APIKey:    cfg.SendGridAPIKey,
		Whitelist: wl,
	}
}

func (v *SendGridVerifier) VerifyEmail(ctx context.Context, email string) (*Result, error) {
	if v.whitelisted(email) {
		return &Result{Score: 100, IsValid: true, Raw: "{}"}, nil
	}

	req := sendgrid.GetRequest(v.APIKey, "/v3/validations/email", v.Host)
	req.Method = "POST"
	req.Body = fmt.Appendf(nil, `{"email":%q,"source":"signup"}`, email)

	resp, err := sendgrid.API(req)
	if err != nil {
		return nil, fmt.Errorf("sendgrid api: %w", err)
	}

	var payload struct {
		Result struct {
			Verdict string  `json:"verdict"`
			Score   float32 `json:"score"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		return nil, fmt.Errorf("sendgrid response: %w", err)
	}

	return &Result{
		Score:   payload.Result.Score,
		IsValid: payload.Result.Verdict != "Invalid",
		Raw:     resp.Body,
	}, nil
}

func (v *SendGridVerifier) whitelisted(email string) bool {
	if len(v.Whitelist) == 0 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return false
	}
	return slices.Contains(v.Whitelist, strings.ToLower(addr.Address[at+1:]))
}
