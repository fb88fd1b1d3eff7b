package submission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Strategy is one way of delivering a payload.
type Strategy interface {
	Name() string
	Submit(ctx context.Context, p Payload) error
}

// RejectedError is returned when a strategy could not deliver the payload.
// Message is safe to show to the visitor.
type RejectedError struct {
	Strategy string
	Status   int // zero for transport failures
	Message  string
	Err      error
}

func (e *RejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Strategy, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Strategy, e.Status, e.Message)
}

func (e *RejectedError) Unwrap() error { return e.Err }

func ok(status int) bool {
	return status >= 200 && status < 300
}

// JSONStrategy posts the payload as a JSON object to a single endpoint.
type JSONStrategy struct {
	Endpoint string
	Client   *http.Client
	// Fallback is used when a rejection carries no readable message.
	Fallback string
}

func (s *JSONStrategy) Name() string { return "json " + s.Endpoint }

func (s *JSONStrategy) Submit(ctx context.Context, p Payload) error {
	body, err := marshalPayload(p)
	if err != nil {
		return &RejectedError{Strategy: s.Name(), Message: s.Fallback, Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &RejectedError{Strategy: s.Name(), Message: s.Fallback, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	loggerFrom(ctx).WithField("endpoint", s.Endpoint).Debug("Posting JSON submission")
	resp, err := s.Client.Do(req)
	if err != nil {
		return &RejectedError{Strategy: s.Name(), Message: s.Fallback, Err: err}
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return &RejectedError{
			Strategy: s.Name(),
			Status:   resp.StatusCode,
			Message:  errorMessage(resp.Body, s.Fallback),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// FormField is the form identifier sent with every form-encoded submission.
const FormField = "form-name"

// FormStrategy posts the payload form-encoded to the root of the page origin.
type FormStrategy struct {
	Origin   string
	FormName string
	Client   *http.Client
	// Message is shown when this strategy fails, whatever the cause.
	Message string
}

func (s *FormStrategy) Name() string { return "form " + s.target() }

func (s *FormStrategy) target() string {
	return strings.TrimRight(strings.TrimSpace(s.Origin), "/") + "/"
}

// encodeForm keeps the field order: form-name first, then the payload.
func encodeForm(formName string, p Payload) string {
	var b strings.Builder
	b.WriteString(url.QueryEscape(FormField))
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(formName))
	for _, f := range p {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

func (s *FormStrategy) Submit(ctx context.Context, p Payload) error {
	body := encodeForm(s.FormName, p)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.target(), strings.NewReader(body))
	if err != nil {
		return &RejectedError{Strategy: s.Name(), Message: s.Message, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loggerFrom(ctx).WithField("target", s.target()).Debug("Posting form-encoded fallback submission")
	resp, err := s.Client.Do(req)
	if err != nil {
		return &RejectedError{Strategy: s.Name(), Message: s.Message, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !ok(resp.StatusCode) {
		return &RejectedError{Strategy: s.Name(), Status: resp.StatusCode, Message: s.Message}
	}
	return nil
}
