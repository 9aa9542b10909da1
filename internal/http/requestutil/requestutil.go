package requestutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxBodyBytes caps control payloads; they carry at most two integers.
const MaxBodyBytes = 4096

// ErrEmptyBody is returned by ReadJSON when the request carries no body.
var ErrEmptyBody = errors.New("body must not be empty")

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// SanitizeRequestID validates the incoming request ID header and generates a new one when invalid.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// ClientIP extracts the client IP from X-Forwarded-For or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// Fields is a decoded JSON object whose values are read one key at a time,
// so a badly typed value never touches the other keys.
type Fields map[string]json.RawMessage

// Int returns the integer under key, or nil when the key is absent or null.
// A present value that is not an integer yields nil and an error.
func (f Fields) Int(key string) (*int, error) {
	raw, ok := f[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("field %q must be an integer", key)
	}
	return &n, nil
}

// ReadJSON decodes a single JSON object from the request body. Unknown keys
// are kept in the result and ignored by callers.
func ReadJSON(w http.ResponseWriter, r *http.Request) (Fields, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var fields Fields
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&fields); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return nil, fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			return nil, errors.New("body must be a JSON object")
		case errors.Is(err, io.EOF):
			return nil, ErrEmptyBody
		case errors.As(err, &maxBytesError):
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return nil, err
		}
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("body must only contain a single JSON value")
	}
	return fields, nil
}
