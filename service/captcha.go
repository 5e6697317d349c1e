package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	// CaptchaField is the form field the reCAPTCHA widget fills in.
	CaptchaField = "g-recaptcha-response"
)

var (
	ErrCaptchaMissing = errors.New("missing captcha response")
	ErrCaptchaFailed  = errors.New("captcha verification failed")
)

type captchaResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Captcha verifies reCAPTCHA tokens. A Captcha without a secret accepts everything.
type Captcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewCaptcha(secret, verifyURL string) *Captcha {
	if verifyURL == "" {
		verifyURL = RecaptchaVerifyURL
	}
	return &Captcha{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Captcha) Enabled() bool { return c != nil && c.secret != "" }

func (c *Captcha) Verify(ctx context.Context, token, remoteIP string) error {
	if !c.Enabled() {
		return nil
	}
	if token == "" {
		return ErrCaptchaMissing
	}
	data := url.Values{}
	data.Set("secret", c.secret)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var result captchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to parse captcha response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrCaptchaFailed, strings.Join(result.ErrorCodes, ","))
	}
	return nil
}
