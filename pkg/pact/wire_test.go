package pact

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNonce_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := Nonce()
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate nonce %q", n)
		}
		seen[n] = struct{}{}
	}
}

func TestNewExecPayload_NilData(t *testing.T) {
	p := NewExecPayload(`(x)`, nil, "n")
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"nonce":"n","payload":{"exec":{"code":"(x)","data":{}}}}`
	if string(b) != want {
		t.Errorf("payload = %s, want %s", b, want)
	}
}

func TestResult_DecodeSuccess(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"status":"success","data":{"answer":1}}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !r.IsSuccess() {
		t.Error("result should be success")
	}
	if string(r.Data) != `{"answer":1}` {
		t.Errorf("data = %s", r.Data)
	}
	if r.FailureMessage() != "" {
		t.Errorf("success should have empty failure message, got %q", r.FailureMessage())
	}
}

func TestResult_DecodeFailure(t *testing.T) {
	var r Result
	in := `{"status":"failure","error":"TxFailure","detail":"key not found"}`
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if r.IsSuccess() {
		t.Error("result should be failure")
	}
	if r.Error != "TxFailure" || r.Detail != "key not found" {
		t.Errorf("error = %q detail = %q", r.Error, r.Detail)
	}
	if got := r.FailureMessage(); got != "TxFailure: key not found" {
		t.Errorf("FailureMessage() = %q", got)
	}
}

func TestResult_DecodeFailureText(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`"evaluation aborted"`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if r.IsSuccess() {
		t.Error("bare string result is a failure")
	}
	if r.FailureMessage() != "evaluation aborted" {
		t.Errorf("FailureMessage() = %q", r.FailureMessage())
	}
}

func TestResult_DecodeStructuredErrorObject(t *testing.T) {
	var r Result
	in := `{"status":"failure","error":{"callStack":[],"message":"boom"}}`
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !strings.Contains(r.Error, "boom") {
		t.Errorf("error should carry the raw document, got %q", r.Error)
	}
}

func TestResult_DecodeUnknownStatus(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"status":"pending"}`), &r); err == nil {
		t.Error("unknown status should fail to decode")
	}
}

func TestListenResponse_Decode(t *testing.T) {
	var lr ListenResponse
	in := `{"result":{"status":"success","data":{"answer":1}},"txId":42}`
	if err := json.Unmarshal([]byte(in), &lr); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if lr.TxID != 42 {
		t.Errorf("txId = %d, want 42", lr.TxID)
	}
	if !lr.Result.IsSuccess() {
		t.Error("result should be success")
	}
}

func TestSendRequest_Encode(t *testing.T) {
	cmd, err := UnsignedCommand(NewExecPayload(`(x)`, nil, "n"))
	if err != nil {
		t.Fatalf("UnsignedCommand() error: %v", err)
	}
	b, err := json.Marshal(SendRequest{Cmds: []Command{*cmd}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.HasPrefix(string(b), `{"cmds":[{"hash":"`) {
		t.Errorf("unexpected send body shape: %s", b)
	}
}
