package pagination_test

import (
	"testing"

	"github.com/acctsys/accounting_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("2025-03-15T10:00:00Z", "42")

	fields, err := pagination.DecodeMultiFieldToken(token)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "2025-03-15T10:00:00Z", fields[0])
	assert.Equal(t, "42", fields[1])
}

func TestDecodeInvalidToken(t *testing.T) {
	_, err := pagination.DecodeMultiFieldToken("not base64 at all!!!")
	assert.Error(t, err)
}
