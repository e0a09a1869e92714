package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prompthash.backend/internal/domain/entities"
)

// probedFields is the fixed priority order for extracting text from an
// object-shaped gateway reply.
var probedFields = []string{"response", "Response", "content", "message"}

// AssistClient talks to the external AI gateway. The gateway's reply shapes
// vary by deployment, so parsing is permissive rather than schema-bound.
type AssistClient struct {
	baseURL      string
	defaultModel string
	httpClient   *http.Client
}

func NewAssistClient(baseURL, defaultModel string, timeout time.Duration) *AssistClient {
	return &AssistClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultModel: defaultModel,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Chat sends a chat prompt to the gateway. Errors are returned to the caller
// unretried.
func (c *AssistClient) Chat(ctx context.Context, prompt, model string) (*entities.AssistReply, error) {
	if model == "" {
		model = c.defaultModel
	}
	body, err := c.get(ctx, "/api/chat", url.Values{"prompt": {prompt}, "model": {model}})
	if err != nil {
		return nil, err
	}
	reply := parseReply(body)
	return &reply, nil
}

// ImprovePrompt asks the gateway to rewrite a prompt. It tries GET first and
// falls back to POST on any failure. When the reply has no recognizable text,
// the original prompt is returned unchanged instead of an error.
func (c *AssistClient) ImprovePrompt(ctx context.Context, prompt, target string) (*entities.ImprovePromptResult, error) {
	if target == "" {
		target = "text"
	}

	body, err := c.get(ctx, "/api/improve-prompt", url.Values{"prompt": {prompt}, "target": {target}})
	if err != nil {
		body, err = c.post(ctx, "/api/improve-prompt", map[string]string{"prompt": prompt, "target": target})
		if err != nil {
			return nil, err
		}
	}

	reply := parseReply(body)
	if reply.Source == entities.AssistSourceRaw {
		return &entities.ImprovePromptResult{Prompt: prompt, Improved: false}, nil
	}
	return &entities.ImprovePromptResult{Prompt: reply.Text, Improved: reply.Text != prompt}, nil
}

// GenerateImage requests an image-producing completion.
func (c *AssistClient) GenerateImage(ctx context.Context, prompt, model string) (*entities.AssistReply, error) {
	if model == "" {
		model = c.defaultModel
	}
	body, err := c.get(ctx, "/api/generate-image", url.Values{"prompt": {prompt}, "model": {model}})
	if err != nil {
		return nil, err
	}
	reply := parseReply(body)
	return &reply, nil
}

// Models lists the models the gateway advertises, falling back to the
// configured default when the gateway does not expose a listing.
func (c *AssistClient) Models(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/models", nil)
	if err != nil {
		return []string{c.defaultModel}, nil
	}

	var models []string
	if err := json.Unmarshal(body, &models); err != nil || len(models) == 0 {
		return []string{c.defaultModel}, nil
	}
	return models, nil
}

// Health reports whether the gateway is reachable.
func (c *AssistClient) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/api/health", nil)
	return err
}

func (c *AssistClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *AssistClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *AssistClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("assist gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// parseReply extracts text from a gateway reply. Probe order: bare JSON
// string, then the known field names, then the first string-valued field in
// document order, then the raw body.
func parseReply(body []byte) entities.AssistReply {
	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return entities.AssistReply{Text: text, Source: entities.AssistSourceText}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, name := range probedFields {
			raw, ok := fields[name]
			if !ok {
				continue
			}
			var value string
			if err := json.Unmarshal(raw, &value); err == nil && value != "" {
				return entities.AssistReply{Text: value, Source: name}
			}
		}

		if name, value, ok := firstStringField(body); ok {
			return entities.AssistReply{Text: value, Source: entities.AssistSourceField, Field: name}
		}
	}

	return entities.AssistReply{Text: string(body), Source: entities.AssistSourceRaw}
}

// firstStringField scans the top-level object in document order and returns
// the first field holding a non-empty string. Map iteration would lose the
// order, so this walks the token stream instead.
func firstStringField(body []byte) (string, string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return "", "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", "", false
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", "", false
		}
		key, ok := keyTok.(string)
		if !ok {
			return "", "", false
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", "", false
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil && value != "" {
			return key, value, true
		}
	}
	return "", "", false
}
