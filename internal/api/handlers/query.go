// Package handlers provides HTTP handlers for the stub answering API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pfcsearch/widget-runtime/internal/api/dto"
	"github.com/pfcsearch/widget-runtime/internal/api/middleware"
	"github.com/pfcsearch/widget-runtime/internal/core/storage"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
)

const (
	// apiKeyPrefix is the prefix every widget credential carries.
	apiKeyPrefix = "pfc_sk_"

	// historyKeyPrefix namespaces per-session history entries in the store.
	historyKeyPrefix = "stub:history:"

	// maxHistoryTurns bounds the per-session history kept by the stub.
	maxHistoryTurns = 24
)

// QueryHandler answers widget queries. It is a development stand-in for the
// production answering service: it enforces the credential contract, keeps a
// short per-session history, and echoes a synthesized answer.
type QueryHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store storage.Store) *QueryHandler {
	return &QueryHandler{
		store:  store,
		logger: logging.Component("query-handler"),
	}
}

// Query handles POST /api/widget/query.
func (h *QueryHandler) Query(c *gin.Context) {
	apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
	if apiKey == "" {
		middleware.AbortWithDetail(c, http.StatusUnauthorized, "missing API key")
		return
	}
	if !strings.HasPrefix(apiKey, apiKeyPrefix) {
		middleware.AbortWithDetail(c, http.StatusUnauthorized, "invalid API key")
		return
	}

	var req dto.WidgetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithDetail(c, http.StatusUnprocessableEntity, "question is required")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		middleware.AbortWithDetail(c, http.StatusUnprocessableEntity, "question is required")
		return
	}

	sourceID := strings.ToLower(strings.TrimSpace(req.SourceID))

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := c.Request.Context()
	history := h.loadHistory(c, sessionID)
	history = append(history, "USER: "+question)

	answer := fmt.Sprintf("(stub) I received your question %q", question)
	if len(history) > 1 {
		answer = fmt.Sprintf("%s — turn %d of this conversation", answer, (len(history)+1)/2)
	}
	history = append(history, "ASSISTANT: "+answer)

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if data, err := json.Marshal(history); err == nil {
		if err := h.store.Set(ctx, historyKeyPrefix+sessionID, string(data)); err != nil {
			h.logger.Warn().Err(err).Msg("failed to persist session history")
		}
	}

	c.JSON(http.StatusOK, dto.WidgetQueryResponse{
		Answer:    answer,
		SessionID: sessionID,
		SourceID:  sourceID,
	})
}

// loadHistory reads the session's history; a missing or corrupted entry
// yields an empty history rather than an error.
func (h *QueryHandler) loadHistory(c *gin.Context, sessionID string) []string {
	raw, ok, err := h.store.Get(c.Request.Context(), historyKeyPrefix+sessionID)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to load session history")
		return nil
	}
	if !ok {
		return nil
	}

	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil
	}
	return history
}
