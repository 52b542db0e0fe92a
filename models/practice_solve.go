// file: models/practice_solve.go
package models

import (
	"time"
)

// PracticeSolve 对应 uitctf_practice_solve 表——练习模式台账。
// 练习按个人计，不计比赛分；(user_id, challenge_id) 唯一。
type PracticeSolve struct {
	ID          uint64 `gorm:"primarykey"`
	UserID      uint32 `gorm:"uniqueIndex:unique_user_challenge;not null"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_user_challenge;not null"`
	CreatedAt   time.Time
}

func (PracticeSolve) TableName() string {
	return "uitctf_practice_solve"
}
