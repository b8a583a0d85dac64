package core

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusLogger(base)

	logger.Warn("authentication failed", "reason", ReasonInvalidToken, "attempt", 2)

	out := buf.String()
	assert.Contains(t, out, `"msg":"authentication failed"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"reason":"invalid_token"`)
	assert.Contains(t, out, `"attempt":2`)
}

func TestFields(t *testing.T) {
	fields := Fields([]any{"a", 1, 2, "b", "dangling"})

	require.Len(t, fields, 3)
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "b", fields["2"])
	assert.Equal(t, "dangling", fields["!BADKEY"])
}
