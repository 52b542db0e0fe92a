// file: models/solve.go
package models

import (
	"time"
)

// Solve 对应 uitctf_solve 表——赛时解题台账，只插入不更新。
// (team_id, challenge_id, event_id) 上的唯一索引是"同队同题同赛事
// 至多记一次"的唯一并发控制手段：并发时先插入成功者得分，
// 后到者由存储层拒绝（参见 services.RecordSolve）。
type Solve struct {
	ID          uint64    `gorm:"primarykey"`
	TeamID      uint32    `gorm:"uniqueIndex:unique_team_challenge_event;not null"`
	ChallengeID uint32    `gorm:"uniqueIndex:unique_team_challenge_event;not null"`
	EventID     uint32    `gorm:"uniqueIndex:unique_team_challenge_event;not null"`
	UserID      uint32    `gorm:"index;not null"`
	Points      uint      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
}

func (Solve) TableName() string {
	return "uitctf_solve"
}
