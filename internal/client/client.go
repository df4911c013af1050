// Package client submits signed Pact commands over the REST API: one
// POST /send to obtain a request key, then one POST /listen for the
// result. Every failure mode maps to a typed BackendError; nothing is
// retried here.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kadena-community/pactwallet/internal/log"
	"github.com/kadena-community/pactwallet/pkg/pact"
)

// API endpoint paths.
const (
	sendPath   = "/api/v1/send"
	listenPath = "/api/v1/listen"
)

// Client talks to one Pact backend. It holds no mutable state, so one
// instance may serve concurrent submissions.
type Client struct {
	baseURI string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the given backend base URI.
//
// The underlying http.Client carries no global timeout: /listen is a
// server-side long poll with no client deadline. Callers bound /send
// through the context.
func New(baseURI string) *Client {
	return NewWithHTTPClient(baseURI, &http.Client{})
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client.
func NewWithHTTPClient(baseURI string, hc *http.Client) *Client {
	return &Client{
		baseURI: strings.TrimRight(baseURI, "/"),
		http:    hc,
		log:     log.Client.With().Str("backend", baseURI).Logger(),
	}
}

// BaseURI returns the backend base URI this client targets.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Send submits a signed command to /send and returns the request key.
// The response must contain exactly one key.
func (c *Client) Send(ctx context.Context, cmd *pact.Command) (string, error) {
	body, err := c.post(ctx, sendPath, pact.SendRequest{Cmds: []pact.Command{*cmd}})
	if err != nil {
		return "", err
	}

	var sr pact.SendResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", parseError(err)
	}
	if len(sr.RequestKeys) != 1 {
		return "", requestKeyCountError(len(sr.RequestKeys))
	}

	c.log.Debug().Str("request_key", sr.RequestKeys[0]).Msg("command accepted")
	return sr.RequestKeys[0], nil
}

// Listen long-polls /listen for the result of a request key. There is
// no client-side deadline; cancel through the context.
func (c *Client) Listen(ctx context.Context, requestKey string) (*pact.Result, error) {
	body, err := c.post(ctx, listenPath, pact.ListenRequest{Listen: requestKey})
	if err != nil {
		return nil, err
	}

	var lr pact.ListenResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, parseError(err)
	}
	return &lr.Result, nil
}

// Submit runs the full pipeline: one /send, then on exactly one request
// key, one /listen. A server-reported failure surfaces as a typed error
// distinct from transport failures. No retries.
func (c *Client) Submit(ctx context.Context, cmd *pact.Command) (json.RawMessage, error) {
	requestKey, err := c.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}

	result, err := c.Listen(ctx, requestKey)
	if err != nil {
		return nil, err
	}

	if !result.IsSuccess() {
		c.log.Debug().Str("request_key", requestKey).Str("failure", result.FailureMessage()).Msg("command failed on backend")
		if result.Text != "" {
			return nil, resultFailureTextError(result.Text)
		}
		message := result.Error
		if message == "" {
			message = "command failed on backend"
		}
		return nil, resultFailureError(message, result.Detail)
	}
	return result.Data, nil
}

// post issues one POST and returns the raw response body. The response
// body is always drained and closed before returning.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, otherError(fmt.Sprintf("marshal request body: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURI+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, otherError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	switch {
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return nil, requestTooLargeError()
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, httpError(resp.Status)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, emptyResponseError()
	}
	return body, nil
}
