package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfcsearch/widget-runtime/internal/domain/models"
	"github.com/pfcsearch/widget-runtime/internal/widget/client"
)

func testConfig(endpoint string) models.WidgetConfig {
	return models.WidgetConfig{
		Endpoint:  endpoint,
		APIKey:    "pfc_sk_test",
		SourceID:  "medicina_unne_prod",
		SessionID: "session-1",
		Metadata:  models.Metadata{"page_url": "https://example.com/inscripciones"},
	}
}

func TestSend_MissingCredentialShortCircuits(t *testing.T) {
	// Arrange: any request reaching the server fails the test
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := client.NewClient(nil)
	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	// Act
	res := c.Send("hello", cfg)

	// Assert
	assert.Equal(t, int32(0), calls.Load(), "no network call for missing credential")
	assert.Equal(t, models.RoleAssistant, res.Message.Role)
	assert.Contains(t, res.Message.Text, "missing credential")
	assert.Empty(t, res.SessionID)
}

func TestSend_Success(t *testing.T) {
	// Arrange
	var gotReq models.QueryRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(models.QueryResponse{
			Answer:    "Classes start March 4",
			SessionID: "abc123",
		})
	}))
	defer srv.Close()

	c := client.NewClient(nil)

	// Act
	res := c.Send("when do classes start?", testConfig(srv.URL))

	// Assert
	assert.Equal(t, "Classes start March 4", res.Message.Text)
	assert.Equal(t, models.RoleAssistant, res.Message.Role)
	assert.Equal(t, "abc123", res.SessionID)

	assert.Equal(t, "pfc_sk_test", gotKey, "credential travels in the header")
	assert.Equal(t, "when do classes start?", gotReq.Question)
	assert.Equal(t, "medicina_unne_prod", gotReq.SourceID)
	assert.Equal(t, "session-1", gotReq.SessionID)
	assert.Equal(t, "https://example.com/inscripciones", gotReq.Metadata["page_url"])
	assert.NotEmpty(t, gotReq.Metadata["sent_at"], "request metadata is stamped")
}

func TestSend_ServerErrorWithDetail(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "index unavailable"})
	}))
	defer srv.Close()

	c := client.NewClient(nil)

	// Act
	res := c.Send("where do I register?", testConfig(srv.URL))

	// Assert
	assert.Equal(t, models.RoleAssistant, res.Message.Role)
	assert.Contains(t, res.Message.Text, "index unavailable")
	assert.Empty(t, res.SessionID)
}

func TestSend_ServerErrorWithUnparsableBody(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := client.NewClient(nil)

	// Act
	res := c.Send("hello", testConfig(srv.URL))

	// Assert: generic status-code reason
	assert.Contains(t, res.Message.Text, "HTTP 502")
}

func TestSend_NetworkErrorResolvesToMessage(t *testing.T) {
	// Arrange: closed server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := client.NewClient(nil)

	// Act
	res := c.Send("hello", testConfig(url))

	// Assert
	assert.Equal(t, models.RoleAssistant, res.Message.Role)
	assert.Contains(t, res.Message.Text, "network error")
}

func TestSend_EmptyAnswerFallsBack(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.QueryResponse{Answer: ""})
	}))
	defer srv.Close()

	c := client.NewClient(nil)

	// Act
	res := c.Send("hello", testConfig(srv.URL))

	// Assert
	assert.Equal(t, "no answer received", res.Message.Text)
}

func TestSend_OmitsEmptySourceAndSession(t *testing.T) {
	// Arrange
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(models.QueryResponse{Answer: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.SourceID = ""
	cfg.SessionID = ""

	// Act
	client.NewClient(nil).Send("hello", cfg)

	// Assert
	assert.NotContains(t, raw, "source_id")
	assert.NotContains(t, raw, "session_id")
	assert.Contains(t, raw, "metadata")
}
