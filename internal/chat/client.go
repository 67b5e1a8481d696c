// Package chat talks to the external sales-agent endpoint on behalf of
// the storefront chat widget. The agent is an opaque collaborator:
// {message, history} in, {response} or {error} out.
package chat

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Fallback is shown to the user when the agent cannot be reached. The
// failed turn is not added to the history, so a retry carries no
// duplicate context.
const Fallback = "Desculpe, estou com problemas de ligação. Tente mais tarde."

// ErrAgentUnavailable wraps every transport-level or agent-reported
// failure.
var ErrAgentUnavailable = errors.New("agent unavailable")

// Turn is one prior conversation turn.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Client calls the agent endpoint with a bounded timeout. An unbounded
// wait would hang the widget whenever the agent stalls.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a Client for the given endpoint. A zero timeout
// defaults to 30 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Send posts the user message plus history and returns the agent's
// reply. Transport failures, non-2xx statuses, and agent-reported
// errors all come back wrapped in ErrAgentUnavailable.
func (c *Client) Send(ctx context.Context, message string, history []Turn) (string, error) {
	body := encodeRequest(message, history)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrAgentUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Wrapf(ErrAgentUnavailable, "status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(ErrAgentUnavailable, "read response")
	}

	reply, agentErr, err := decodeResponse(raw)
	if err != nil {
		return "", errors.Wrap(ErrAgentUnavailable, "decode response")
	}
	if agentErr != "" {
		return "", errors.Wrap(ErrAgentUnavailable, agentErr)
	}
	return reply, nil
}

func encodeRequest(message string, history []Turn) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("message", func(e *jx.Encoder) {
			e.Str(message)
		})
		e.Field("history", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, t := range history {
					e.Obj(func(e *jx.Encoder) {
						e.Field("role", func(e *jx.Encoder) {
							e.Str(t.Role)
						})
						e.Field("content", func(e *jx.Encoder) {
							e.Str(t.Content)
						})
					})
				}
			})
		})
	})
	return e.Bytes()
}

func decodeResponse(raw []byte) (reply, agentErr string, err error) {
	d := jx.DecodeBytes(raw)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "response":
			v, err := d.Str()
			if err != nil {
				return err
			}
			reply = v
			return nil
		case "error":
			v, err := d.Str()
			if err != nil {
				return err
			}
			agentErr = v
			return nil
		default:
			return d.Skip()
		}
	})
	return reply, agentErr, err
}
