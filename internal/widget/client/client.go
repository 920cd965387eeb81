// Package client sends widget queries to the remote answering service.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	domainerrors "github.com/pfcsearch/widget-runtime/internal/domain/errors"
	"github.com/pfcsearch/widget-runtime/internal/domain/models"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
)

const (
	// DefaultTimeout bounds one outbound query. The original runtime set no
	// timeout and a hung request pinned the pending indicator forever; here a
	// timed-out request resolves to an error message like any other failure.
	DefaultTimeout = 30 * time.Second

	// apiKeyHeader carries the credential. It is never placed in the body or
	// URL and never logged.
	apiKeyHeader = "X-API-Key"

	msgMissingCredential = "This widget has no API key configured yet, so I can't reach the answering service. (missing credential)"
	msgNoAnswer          = "no answer received"
	errorReplyFormat     = "Sorry, I couldn't get an answer: %s. Please try again."
)

// Config holds the configuration for the messaging client.
type Config struct {
	// Timeout bounds one request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// Result is the resolution of one send: the assistant message to append and,
// when the service rotated the conversation, the session id to adopt.
type Result struct {
	Message   models.Message
	SessionID string
}

// Client issues widget queries. Every send resolves to an assistant message,
// success or failure; nothing escapes this contract as an error.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new messaging client.
func NewClient(cfg *Config) *Client {
	timeout := DefaultTimeout
	var httpClient *http.Client
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		httpClient = cfg.HTTPClient
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		logger:     logging.Component("client"),
	}
}

// Send submits one user turn under the given configuration. Preconditions
// (trimmed non-empty text, at most one outstanding send) are enforced by the
// transcript layer, not here.
func (c *Client) Send(text string, cfg models.WidgetConfig) Result {
	resp, err := c.query(text, cfg)
	if err != nil {
		return c.failureResult(err)
	}

	answer := resp.Answer
	if answer == "" {
		answer = msgNoAnswer
	}

	return Result{
		Message:   models.NewAssistantMessage(answer),
		SessionID: resp.SessionID,
	}
}

// query performs one HTTP round trip, classifying every failure as a
// WidgetError.
func (c *Client) query(text string, cfg models.WidgetConfig) (models.QueryResponse, error) {
	var zero models.QueryResponse

	if cfg.APIKey == "" {
		// Local, non-retryable until configuration changes. No network call.
		return zero, domainerrors.NewMissingCredentialError()
	}

	reqBody := models.QueryRequest{
		Question:  text,
		SourceID:  cfg.SourceID,
		SessionID: cfg.SessionID,
		Metadata: cfg.Metadata.Merge(models.Metadata{
			"sent_at": time.Now().UTC().Format(time.RFC3339),
		}),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return zero, domainerrors.NewTransportError(fmt.Errorf("failed to marshal query request: %w", err))
	}

	httpReq, err := http.NewRequest(http.MethodPost, cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return zero, domainerrors.NewTransportError(fmt.Errorf("failed to create query request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return zero, domainerrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, domainerrors.NewServerError(resp.StatusCode, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, domainerrors.NewServerError(resp.StatusCode, errorReason(resp.StatusCode, body))
	}

	var queryResp models.QueryResponse
	if err := json.Unmarshal(body, &queryResp); err != nil {
		return zero, domainerrors.NewDecodeError(resp.StatusCode, err)
	}

	return queryResp, nil
}

// failureResult converts a classified failure into the assistant message the
// transcript receives. Failures never escape Send as errors.
func (c *Client) failureResult(err error) Result {
	if domainerrors.IsMissingCredential(err) {
		return Result{Message: models.NewAssistantMessage(msgMissingCredential)}
	}

	reason := "network error"
	if widgetErr, ok := domainerrors.GetWidgetError(err); ok {
		switch widgetErr.Code {
		case domainerrors.ErrCodeServer, domainerrors.ErrCodeDecode:
			reason = widgetErr.Message
		}
		c.logger.Warn().Err(err).Str("code", widgetErr.Code).Msg("query failed")
	} else {
		c.logger.Warn().Err(err).Msg("query failed")
	}

	return Result{
		Message: models.NewAssistantMessage(fmt.Sprintf(errorReplyFormat, reason)),
	}
}

// errorReason extracts the machine-readable detail from an error body,
// falling back to a generic status-code reason when it doesn't parse.
func errorReason(status int, body []byte) string {
	var errBody models.ErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Detail != "" {
		return errBody.Detail
	}
	return fmt.Sprintf("HTTP %d", status)
}
