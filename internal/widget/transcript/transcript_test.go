package transcript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfcsearch/widget-runtime/internal/domain/models"
	"github.com/pfcsearch/widget-runtime/internal/widget/transcript"
)

func TestNew_OpensWithGreeting(t *testing.T) {
	// Act
	tr := transcript.New("Hi! Ask me anything.")

	// Assert
	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Equal(t, "Hi! Ask me anything.", msgs[0].Text)
	assert.False(t, tr.Pending())
}

func TestAppend_PreservesOrder(t *testing.T) {
	// Arrange
	tr := transcript.New("hello")

	// Act
	tr.AppendUser("where do I register?")
	tr.AppendAssistant("Registration opens in March.")
	tr.AppendUser("thanks")

	// Assert
	msgs := tr.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, models.RoleUser, msgs[1].Role)
	assert.Equal(t, "where do I register?", msgs[1].Text)
	assert.Equal(t, models.RoleAssistant, msgs[2].Role)
	assert.Equal(t, models.RoleUser, msgs[3].Role)
}

func TestMessages_ReturnsCopy(t *testing.T) {
	// Arrange
	tr := transcript.New("hello")

	// Act
	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	// Assert
	assert.Equal(t, "hello", tr.Messages()[0].Text)
}

func TestBeginSend_AllowsOneOutstanding(t *testing.T) {
	// Arrange
	tr := transcript.New("hello")

	// Act & Assert
	assert.True(t, tr.BeginSend())
	assert.True(t, tr.Pending())
	assert.False(t, tr.BeginSend(), "second send while pending is rejected")

	tr.EndSend()
	assert.False(t, tr.Pending())
	assert.True(t, tr.BeginSend(), "send allowed again after resolution")
}

func TestSendable(t *testing.T) {
	// Arrange
	tr := transcript.New("hello")

	// Assert
	assert.False(t, tr.Sendable(""))
	assert.False(t, tr.Sendable("   \n\t"))
	assert.True(t, tr.Sendable("question"))

	tr.BeginSend()
	assert.False(t, tr.Sendable("question"), "rejected while pending")
}
