// file: models/team_member.go
package models

import "time"

// 自定义队伍角色类型
type TeamMemberRole string

const (
	TeamRoleLeader TeamMemberRole = "leader"
	TeamRoleMember TeamMemberRole = "member"
)

// TeamMember 同时是 user_id -> team_id 的反向索引：
// user_id 上的唯一索引保证一名用户同一时刻至多属于一支队伍，
// 入队/退队都通过本表事务性维护。
type TeamMember struct {
	ID       uint32         `gorm:"primarykey"`
	TeamID   uint32         `gorm:"index;not null"`
	UserID   uint32         `gorm:"uniqueIndex:unique_member_user;not null"`
	User     User           `gorm:"foreignKey:UserID"`
	Role     TeamMemberRole `gorm:"size:20;default:'member'"`
	JoinedAt time.Time
}

func (TeamMember) TableName() string {
	return "uitctf_team_members"
}
