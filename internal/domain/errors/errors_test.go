package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/pfcsearch/widget-runtime/internal/domain/errors"
)

func TestGetWidgetError_UnwrapsChain(t *testing.T) {
	// Arrange
	inner := domainerrors.NewServerError(500, "index unavailable")
	wrapped := fmt.Errorf("send failed: %w", inner)

	// Act
	widgetErr, ok := domainerrors.GetWidgetError(wrapped)

	// Assert
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeServer, widgetErr.Code)
	assert.Equal(t, 500, widgetErr.Status)
	assert.Equal(t, "index unavailable", widgetErr.Message)
}

func TestGetWidgetError_PlainError(t *testing.T) {
	_, ok := domainerrors.GetWidgetError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestIsMissingCredential(t *testing.T) {
	assert.True(t, domainerrors.IsMissingCredential(domainerrors.NewMissingCredentialError()))
	assert.False(t, domainerrors.IsMissingCredential(domainerrors.NewTransportError(fmt.Errorf("refused"))))
	assert.False(t, domainerrors.IsMissingCredential(nil))
}

func TestWidgetError_Error(t *testing.T) {
	err := domainerrors.NewTransportError(fmt.Errorf("connection refused"))
	assert.Contains(t, err.Error(), domainerrors.ErrCodeTransport)
	assert.Contains(t, err.Error(), "connection refused")

	bare := domainerrors.NewMissingCredentialError()
	assert.Contains(t, bare.Error(), domainerrors.ErrCodeMissingCredential)
}
