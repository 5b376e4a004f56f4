package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	token := Sign("feed", "secret", time.Minute)

	subject, err := Verify(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "feed", subject)
}

func TestVerifyFailures(t *testing.T) {
	valid := Sign("feed", "secret", time.Minute)

	_, err := Verify(valid, "other")
	assert.ErrorIs(t, err, ErrSignature)

	_, err = Verify(sign("feed", "secret", time.Now().Add(-time.Minute).Unix()), "secret")
	assert.ErrorIs(t, err, ErrExpired)

	for _, bad := range []string{"", "feed", "feed.x.abc", ".1.abc", "a.b.c.d"} {
		_, err = Verify(bad, "secret")
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}

	_, err = Verify("other.9999999999."+computeHMAC("feed", 9999999999, "secret"), "secret")
	assert.ErrorIs(t, err, ErrSignature)
}
