package upstream

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var (
	ErrNotFound     = errors.New("upstream: not found")
	ErrUnauthorized = errors.New("upstream: unauthorized")
	ErrForbidden    = errors.New("upstream: forbidden")
)

// StatusError is a non-2xx answer other than 401, 403 and 404.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream: status %d", e.Status)
}

// statusError classifies a response status. Bodies of generic failures are
// searched for a message field.
func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = sonic.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	return &StatusError{Status: status, Message: msg}
}
