package apikey

import (
	"context"
	"errors"
	"testing"

	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	hash, err := Hash("s3cret-trigger-key")
	require.NoError(t, err)
	v := NewVerifier(hash)

	sub, err := v.VerifyBearer(context.Background(), "s3cret-trigger-key")
	require.NoError(t, err)
	assert.Equal(t, "api-key", sub)

	_, err = v.VerifyBearer(context.Background(), "wrong")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerifier_MalformedHash(t *testing.T) {
	_, err := NewVerifier("not-a-bcrypt-hash").VerifyBearer(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
