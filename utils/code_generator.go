// file: utils/code_generator.go
package utils

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateInvitationCode 生成指定长度的随机邀请码
func GenerateInvitationCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GenerateFileID 生成附件的外部存储引用 ID
func GenerateFileID() string {
	return uuid.New().String()
}
