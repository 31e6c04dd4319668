package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/vault-guard/models"
)

// mapHTTPError returns nil for a 2xx status and an [*Error] otherwise. The
// message is the body's "message" field, then its "error" field, then a
// generic "request failed: <status>".
func mapHTTPError(status int, body []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	message := fmt.Sprintf("request failed: %d", status)
	if len(body) > 0 {
		var errBody models.ErrorResponse
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Text() != "" {
			message = errBody.Text()
		}
	}

	return NewStatusError(status, message)
}

// NewStatusError builds the [*Error] for a non-2xx status with the given
// message. An empty message becomes "request failed: <status>".
func NewStatusError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("request failed: %d", status)
	}
	return &Error{Status: status, Message: message, kind: statusKind(status)}
}

// statusCause is the cause attached to a malformed response: the status
// error for a non-2xx status, a plain parse error otherwise.
func statusCause(status int) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return errInvalidJSON
	}
	return NewStatusError(status, "")
}

func statusKind(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrRequestFailed
	}
}
