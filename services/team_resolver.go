// file: services/team_resolver.go
package services

import (
	"errors"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"gorm.io/gorm"
)

// TeamForUser 通过 uitctf_team_members 上的 user_id 反向索引解析
// 用户当前所属队伍。"未入队"是正常结果，返回 (nil, nil)；
// 只有真正的存储错误才返回 err。
func TeamForUser(userID uint32) (*models.Team, error) {
	var member models.TeamMember
	if err := database.DB.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var team models.Team
	if err := database.DB.First(&team, member.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 队伍已解散但成员行残留，按未入队处理
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}
