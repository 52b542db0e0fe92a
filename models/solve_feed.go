// file: models/solve_feed.go
package models

import (
	"time"
)

// SolveFeed 对应 uitctf_solve_feed 缓存表。
// 仅用于首页"实时解题动态"展示，排行榜计分永远不读这张表。
type SolveFeed struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ChallengeID   uint32    `gorm:"not null" json:"challenge_id"`
	ChallengeName string    `gorm:"size:100;not null" json:"challenge_name"`
	TeamID        uint32    `gorm:"not null" json:"team_id"`
	TeamName      string    `gorm:"size:100;not null" json:"team_name"`
	Points        uint      `gorm:"not null" json:"points"`
	SolvingTime   time.Time `gorm:"index" json:"solving_time"`
}

func (SolveFeed) TableName() string {
	return "uitctf_solve_feed"
}
