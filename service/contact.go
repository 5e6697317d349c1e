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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	mail "github.com/go-mail/mail/v2"
)

// ErrRelayUnreachable means the message never reached the relay.
var ErrRelayUnreachable = errors.New("contact relay unreachable")

// RelayError is a rejection from the relay. Messages may be empty.
type RelayError struct {
	Status   int
	Messages []string
}

func (e *RelayError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("contact relay rejected message (status %d)", e.Status)
	}
	return "contact relay rejected message: " + strings.Join(e.Messages, ", ")
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`

	// CaptchaToken is forwarded so a relay that checks reCAPTCHA itself can verify it.
	CaptchaToken string `json:"-"`
}

func (m ContactMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Email, validation.Required, is.EmailFormat),
		validation.Field(&m.Message, validation.Required, validation.Length(1, 5000)),
	)
}

type Relay interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// FormRelay posts messages to a hosted form endpoint that answers JSON.
type FormRelay struct {
	endpoint string
	client   *http.Client
}

func NewFormRelay(endpoint string, client *http.Client) *FormRelay {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &FormRelay{endpoint: endpoint, client: client}
}

func (f *FormRelay) Send(ctx context.Context, msg ContactMessage) error {
	form := url.Values{}
	form.Set("name", msg.Name)
	form.Set("email", msg.Email)
	form.Set("message", msg.Message)
	if msg.CaptchaToken != "" {
		form.Set(CaptchaField, msg.CaptchaToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRelayUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	rerr := &RelayError{Status: resp.StatusCode}
	if json.NewDecoder(resp.Body).Decode(&body) == nil {
		for _, e := range body.Errors {
			if e.Message != "" {
				rerr.Messages = append(rerr.Messages, e.Message)
			}
		}
	}
	return rerr
}

type mailSender interface {
	DialAndSend(m ...*mail.Message) error
}

// MailRelay delivers messages over SMTP. The visitor's address goes in Reply-To.
type MailRelay struct {
	sender mailSender
	from   string
	to     string
}

func NewMailRelay(host string, port int, user, password, from, to string) *MailRelay {
	d := mail.NewDialer(host, port, user, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.Timeout = 15 * time.Second
	if from == "" {
		from = user
	}
	return &MailRelay{sender: d, from: from, to: to}
}

func (m *MailRelay) Send(ctx context.Context, msg ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mm := mail.NewMessage()
	mm.SetHeader("From", m.from)
	mm.SetHeader("To", m.to)
	mm.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	mm.SetHeader("Subject", "Portfolio contact from "+msg.Name)
	mm.SetBody("text/plain", msg.Message)
	if err := m.sender.DialAndSend(mm); err != nil {
		return fmt.Errorf("%w: %w", ErrRelayUnreachable, err)
	}
	return nil
}
