// file: models/submission_log.go
package models

import (
	"time"
)

type FlagResult string

const (
	FlagResultCorrect   FlagResult = "correct"
	FlagResultWrong     FlagResult = "wrong"
	FlagResultDuplicate FlagResult = "duplicate"
	FlagResultPractice  FlagResult = "practice"
)

// SubmissionLog 对应 uitctf_flag_log 表，记录每一次 Flag 提交
type SubmissionLog struct {
	ID             uint64     `gorm:"primarykey"`
	ChallengeID    uint32     `gorm:"index;not null"`
	TeamID         uint32     `gorm:"index"`
	UserID         uint32     `gorm:"index;not null"`
	SubmittedFlag  string     `gorm:"size:255;not null"`
	FlagResult     FlagResult `gorm:"size:20;not null"`
	SubmissionTime time.Time  `gorm:"index"`
	IPAddress      string     `gorm:"size:45"`
	Suspected      bool       `gorm:"default:false"`
}

func (SubmissionLog) TableName() string {
	return "uitctf_flag_log"
}
