// internal/domain/user/otp_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode(t *testing.T) {
	t.Run("generates codes of the configured length", func(t *testing.T) {
		for _, length := range []int{4, 6, 8} {
			code, err := GenerateOTPCode(length)
			require.NoError(t, err)
			assert.Len(t, code, length)
		}
	})

	t.Run("codes are numeric", func(t *testing.T) {
		code, err := GenerateOTPCode(6)
		require.NoError(t, err)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "unexpected character %q in %q", ch, code)
		}
	})

	t.Run("rejects out-of-range lengths", func(t *testing.T) {
		for _, length := range []int{0, 3, 9, -1} {
			_, err := GenerateOTPCode(length)
			assert.Error(t, err, "length %d should be rejected", length)
		}
	})

	t.Run("consecutive codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			code, err := GenerateOTPCode(8)
			require.NoError(t, err)
			seen[code] = true
		}
		// 20 identical 8-digit draws would indicate a broken generator
		assert.Greater(t, len(seen), 1)
	})
}
