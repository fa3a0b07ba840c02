package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestHashAndVerifyCode(t *testing.T) {
	hashed, err := HashCode("123456")
	assert.NoError(t, err)
	assert.NotEqual(t, "123456", hashed)

	assert.NoError(t, VerifyCode(hashed, "123456"))
	assert.Error(t, VerifyCode(hashed, "654321"))
}
