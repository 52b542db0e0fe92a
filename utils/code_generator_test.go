// file: utils/code_generator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInvitationCode(t *testing.T) {
	code := GenerateInvitationCode(12)
	assert.Len(t, code, 12)
	for _, ch := range code {
		assert.True(t, (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'), "unexpected char %q", ch)
	}
}

func TestGenerateFileID(t *testing.T) {
	a := GenerateFileID()
	b := GenerateFileID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
