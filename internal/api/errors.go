package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"bosko-storefront/internal/domain"
)

var (
	// ErrUnreachable means no HTTP response was received from the backend.
	ErrUnreachable = errors.New("cannot reach server")
	// ErrUnauthorized means the backend rejected the credential.
	ErrUnauthorized = errors.New("session expired, please sign in again")
)

// ValidationError is a 4xx response other than 401. Messages are shown to the user as-is.
type ValidationError struct {
	Status  int
	Message string
	Errors  []string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return fmt.Sprintf("backend rejected request (%d)", e.Status)
	}
	return strings.Join(msgs, "; ")
}

// Is lets a 404 match domain.ErrNotFound.
func (e *ValidationError) Is(target error) bool {
	return e.Status == http.StatusNotFound && target == domain.ErrNotFound
}

// Messages flattens the message, general errors and field errors (sorted by field).
func (e *ValidationError) Messages() []string {
	var out []string
	if e.Message != "" {
		out = append(out, e.Message)
	}
	out = append(out, e.Errors...)
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, m := range e.Fields[f] {
			out = append(out, f+": "+m)
		}
	}
	return out
}

// ServerError is a 5xx response. Details go to diagnostics, never to the user.
type ServerError struct {
	Status   int
	Method   string
	Endpoint string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend error %d on %s %s", e.Status, e.Method, e.Endpoint)
}

const genericServerMessage = "something went wrong, please try again later"

// UserMessage returns the text a user should see for err.
func UserMessage(err error) string {
	var ve *ValidationError
	var se *ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnreachable):
		return ErrUnreachable.Error()
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &se):
		return genericServerMessage
	default:
		return genericServerMessage
	}
}

// errorBody covers both the envelope ({success,message,errors:[...]}) and
// problem details ({title,errors:{field:[...]}}) shapes.
type errorBody struct {
	Message string          `json:"message"`
	Title   string          `json:"title"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func parseValidationError(status int, body []byte) *ValidationError {
	ve := &ValidationError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		if s := strings.TrimSpace(string(body)); s != "" && len(s) < 512 {
			ve.Message = s
		}
		return ve
	}
	switch {
	case eb.Message != "":
		ve.Message = eb.Message
	case eb.Error != "":
		ve.Message = eb.Error
	case eb.Title != "":
		ve.Message = eb.Title
	}
	if len(eb.Errors) > 0 {
		var list []string
		var fields map[string][]string
		if err := json.Unmarshal(eb.Errors, &list); err == nil {
			ve.Errors = list
		} else if err := json.Unmarshal(eb.Errors, &fields); err == nil {
			ve.Fields = fields
		}
	}
	return ve
}
