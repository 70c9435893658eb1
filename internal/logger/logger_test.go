package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContextPrefersEmail(t *testing.T) {
	ctx := context.WithValue(context.Background(), "email", "alice@example.com")
	log := WithContext(ctx)

	assert.Equal(t, "alice@example.com", log.Entry.Data["user"])
}

func TestWithContextFallsBackToUserID(t *testing.T) {
	ctx := context.WithValue(context.Background(), "user_id", "42")
	log := WithContext(ctx)

	assert.Equal(t, "42", log.Entry.Data["user"])
}

func TestWithContextUnauthenticated(t *testing.T) {
	log := WithContext(context.Background())

	assert.Equal(t, "unknown", log.Entry.Data["user"])
}

func TestWithFieldsChains(t *testing.T) {
	log := New().WithFields(map[string]interface{}{
		"method": "GET",
		"status": 200,
	}).WithField("request_id", "abc")

	assert.Equal(t, "GET", log.Entry.Data["method"])
	assert.Equal(t, 200, log.Entry.Data["status"])
	assert.Equal(t, "abc", log.Entry.Data["request_id"])
}
