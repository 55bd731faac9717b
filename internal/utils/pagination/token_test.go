package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-hq/openbooks_backend/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 30, 15, 4, 5, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "missing separator", token: base64.StdEncoding.EncodeToString([]byte("2025-06-30T00:00:00Z"))},
		{name: "bad entry date", token: base64.StdEncoding.EncodeToString([]byte("nonsense|2025-06-30T00:00:00Z"))},
		{name: "bad created_at", token: base64.StdEncoding.EncodeToString([]byte("2025-06-30T00:00:00Z|nonsense"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
