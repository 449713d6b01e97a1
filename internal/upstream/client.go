package upstream

import (
	"bytes"
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Client performs JSON calls against the REST collaborators.
type Client struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient constructs a client. A zero timeout leaves calls bounded only by
// their context.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{timeout: timeout, logger: logger}
}

type call struct {
	method string
	url    string
	token  string
	body   any
}

type result struct {
	status      int
	body        []byte
	contentType string
	err         error
}

// do sends the call and waits for it or for ctx. A response that arrives
// after ctx ended is dropped.
func (c *Client) do(ctx context.Context, in call) (result, error) {
	var payload []byte
	if in.body != nil {
		encoded, err := sonic.Marshal(in.body)
		if err != nil {
			return result{}, err
		}
		payload = encoded
	}

	done := make(chan result, 1)
	go func() {
		done <- c.send(in, payload)
	}()

	select {
	case <-ctx.Done():
		c.logger.Debug("upstream call abandoned", zap.String("method", in.method), zap.String("url", in.url), zap.Error(ctx.Err()))
		return result{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			c.logger.Warn("upstream call failed", zap.String("method", in.method), zap.String("url", in.url), zap.Error(res.err))
			return res, res.err
		}
		return res, statusError(res.status, res.body)
	}
}

func (c *Client) send(in call, payload []byte) result {
	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(in.method)
	req.SetRequestURI(in.url)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if in.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+in.token)
	}
	if payload != nil {
		req.Header.SetContentType(fiber.MIMEApplicationJSON)
		req.SetBody(payload)
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return result{err: err}
	}
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return result{err: errs[0]}
	}
	return result{status: status, body: body, contentType: string(resp.Header.ContentType())}
}

// getJSON decodes the response body of a GET into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	res, err := c.do(ctx, call{method: fiber.MethodGet, url: url})
	if err != nil {
		return err
	}
	return sonic.Unmarshal(res.body, out)
}

// getList decodes a JSON array into out. Any other body leaves out empty.
func (c *Client) getList(ctx context.Context, url string, out any) error {
	res, err := c.do(ctx, call{method: fiber.MethodGet, url: url})
	if err != nil {
		return err
	}
	if !isArray(res.body) {
		return nil
	}
	return sonic.Unmarshal(res.body, out)
}

// sendJSON issues a write call. An empty response body leaves out untouched.
func (c *Client) sendJSON(ctx context.Context, method, url, token string, body, out any) error {
	res, err := c.do(ctx, call{method: method, url: url, token: token, body: body})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	return sonic.Unmarshal(res.body, out)
}

// isArray reports whether body holds a JSON array. Collaborators answer list
// endpoints with an object on some errors; such bodies are read as empty.
func isArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
