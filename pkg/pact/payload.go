package pact

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Exec carries the Pact source code and its data environment.
type Exec struct {
	Code string  `json:"code"`
	Data *Object `json:"data"`
}

// execWrapper nests Exec under the "exec" key per the Pact wire format.
type execWrapper struct {
	Exec Exec `json:"exec"`
}

// Payload is the inner command document. Its JSON form is stringified
// into the envelope's "cmd" field and hashed for signing.
type Payload struct {
	Nonce   string      `json:"nonce"`
	Payload execWrapper `json:"payload"`
}

// NewExecPayload builds an exec payload with the given nonce. A nil data
// object is replaced with an empty one so the wire form always carries
// an object, not null.
func NewExecPayload(code string, data *Object, nonce string) *Payload {
	if data == nil {
		data = NewObject()
	}
	return &Payload{
		Nonce: nonce,
		Payload: execWrapper{
			Exec: Exec{Code: code, Data: data},
		},
	}
}

// nonceCounter disambiguates nonces generated within the same nanosecond.
var nonceCounter atomic.Uint64

// Nonce returns a practically unique, time-based nonce. Uniqueness here
// avoids server-side replay confusion; it carries no cryptographic weight.
func Nonce() string {
	n := nonceCounter.Add(1)
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format(time.RFC3339Nano), n)
}
