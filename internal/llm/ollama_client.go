package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"tempo/internal/jsonx"
	"tempo/internal/logging"
)

var _ Generator = (*ollamaClient)(nil)

// ollamaClient implements non-streaming completions against an Ollama
// server's generate endpoint.
type ollamaClient struct {
	model      string
	baseURL    string
	options    map[string]any
	httpClient *http.Client
	logger     logging.Logger
}

// NewOllamaClient builds a Generator backed by an Ollama server.
func NewOllamaClient(config Config) Generator {
	defaults := DefaultConfig()

	model := config.Model
	if model == "" {
		model = defaults.Model
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaults.BaseURL
	}
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL = baseURL + "/api"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(defaults.Timeout) * time.Second
	}

	options := make(map[string]any)
	if config.Temperature > 0 {
		options["temperature"] = config.Temperature
	}
	if config.TopP > 0 {
		options["top_p"] = config.TopP
	}
	if config.MaxTokens > 0 {
		options["num_predict"] = config.MaxTokens
	}

	return &ollamaClient{
		model:   model,
		baseURL: baseURL,
		options: options,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logging.NewComponentLogger("ollama-client"),
	}
}

func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := c.buildRequestPayload(prompt)
	if err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, payload)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama request failed: %s", ErrUpstream, strings.TrimSpace(string(body)))
	}

	var response ollamaResponse
	if err := jsonx.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%w: decode ollama response: %v", ErrUpstream, err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("%w: ollama error: %s", ErrUpstream, response.Error)
	}

	c.logger.Debug("ollama responded with %d bytes", len(response.Response))
	return response.Response, nil
}

func (c *ollamaClient) Model() string {
	return c.model
}

func (c *ollamaClient) buildRequestPayload(prompt string) ([]byte, error) {
	request := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}
	if len(c.options) > 0 {
		request.Options = c.options
	}

	body, err := jsonx.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}
	return body, nil
}

func (c *ollamaClient) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/generate", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(httpReq)
}

// classifyTransportError maps transport failures onto the adapter taxonomy
// so the caller can distinguish a deadline from an unreachable server.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}
