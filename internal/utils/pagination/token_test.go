package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustbooks/trust_ledger_app/internal/utils/pagination"
)

func TestEncodeDecodeTokenRoundTrip(t *testing.T) {
	journalDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	token := pagination.EncodeToken(journalDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journalDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing separator.
	_, _, err = pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
