package pact

import (
	"encoding/json"
	"fmt"
)

// SendRequest is the body of POST /api/v1/send.
type SendRequest struct {
	Cmds []Command `json:"cmds"`
}

// SendResponse is the success body of /send.
type SendResponse struct {
	RequestKeys []string `json:"requestKeys"`
}

// ListenRequest is the body of POST /api/v1/listen.
type ListenRequest struct {
	Listen string `json:"listen"`
}

// ListenResponse is the success body of /listen.
type ListenResponse struct {
	Result Result `json:"result"`
	TxID   int64  `json:"txId"`
}

// Result status values reported by the server.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Result is the server-reported outcome of a command. Exactly one shape
// applies: success with data, structured failure with error and detail,
// or a bare failure string.
type Result struct {
	Status string          // StatusSuccess or StatusFailure
	Data   json.RawMessage // success payload
	Error  string          // structured failure message
	Detail string          // structured failure detail
	Text   string          // bare-string failure
}

// IsSuccess reports whether the command succeeded on the server.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// FailureMessage renders the failure for a failed result. Empty for a
// successful result.
func (r Result) FailureMessage() string {
	if r.IsSuccess() {
		return ""
	}
	if r.Text != "" {
		return r.Text
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s: %s", r.Error, r.Detail)
	}
	return r.Error
}

// resultWire is the structured JSON shape of a result.
type resultWire struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
	Detail string          `json:"detail,omitempty"`
}

// UnmarshalJSON accepts either the structured {status,...} form or a
// bare JSON string, which the server emits for some failure paths.
func (r *Result) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = Result{Status: StatusFailure, Text: text}
		return nil
	}

	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	switch w.Status {
	case StatusSuccess:
		*r = Result{Status: StatusSuccess, Data: w.Data}
	case StatusFailure:
		*r = Result{
			Status: StatusFailure,
			Error:  rawToString(w.Error),
			Detail: w.Detail,
		}
	default:
		return fmt.Errorf("decode result: unknown status %q", w.Status)
	}
	return nil
}

// MarshalJSON emits the structured wire form.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Text != "" {
		return json.Marshal(r.Text)
	}
	w := resultWire{Status: r.Status, Data: r.Data, Detail: r.Detail}
	if r.Error != "" {
		eb, err := json.Marshal(r.Error)
		if err != nil {
			return nil, err
		}
		w.Error = eb
	}
	return json.Marshal(w)
}

// rawToString renders an error field that may be a JSON string or an
// arbitrary JSON document.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
