package relayclient

import (
	"encoding/json"
	"time"

	"postman-backend/internal/model/entity"
)

// Call describes one outbound request composed by the user. URL already carries
// any query params.
type Call struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    entity.JSONValue
}

// Outcome is the normalized result of a Call. Err is nil whenever the target
// answered, whatever its status.
type Outcome struct {
	StatusCode int
	Body       entity.JSONValue
	Elapsed    time.Duration
	Err        error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// ResponseTimeMillis is Elapsed rounded to whole milliseconds.
func (o Outcome) ResponseTimeMillis() int64 {
	ms := o.Elapsed.Round(time.Millisecond).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// ErrorMessage is the text stored alongside a failed call.
func (o Outcome) ErrorMessage() *string {
	if o.Err == nil {
		return nil
	}
	msg := o.Err.Error()
	return &msg
}

// ForwardResponse is a raw upstream answer passed through untouched.
type ForwardResponse struct {
	StatusCode  int
	ContentType string
	Body        json.RawMessage
}
