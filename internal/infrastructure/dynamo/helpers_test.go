package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrKey(t *testing.T) {
	key := strKey("user_id", "u-1")
	require.Len(t, key, 1)
	v, ok := key["user_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "u-1", v.Value)
}

func TestCursor_RoundTrip(t *testing.T) {
	c := encodeCursor("user-123")
	assert.NotContains(t, c, "=")
	got, err := decodeCursor(c)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := decodeCursor("%%%")
	assert.Error(t, err)
}
