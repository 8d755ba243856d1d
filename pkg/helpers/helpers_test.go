package helpers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CompareHashAndPassword(hash, "s3cret-pass"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-pass"))
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("svc", "development").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, NewLogger("svc", "production").Formatter)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/avatars/x.png", PublicURL("b", "avatars/x.png"))
}
