// file: controllers/team_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/services"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTeam 创建队伍并把创建者记为队长。
// "一人一队"不靠先查后判：uitctf_team_members.user_id 上的唯一索引
// 在事务提交时兜底，冲突翻译为 409。
func CreateTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		TeamName     string `json:"team_name" binding:"required,min=3,max=100"`
		TeamDescribe string `json:"team_describe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	newTeam := models.Team{
		TeamName:       req.TeamName,
		LeaderID:       userID,
		InvitationCode: utils.GenerateInvitationCode(12),
		TeamDescribe:   req.TeamDescribe,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newTeam).Error; err != nil {
			return err
		}
		leaderMember := models.TeamMember{
			TeamID:   newTeam.ID,
			UserID:   userID,
			Role:     models.TeamRoleLeader,
			JoinedAt: time.Now(),
		}
		return tx.Create(&leaderMember).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 队名撞车或用户已在别的队里
			utils.Error(c, http.StatusConflict, "Team name taken or you are already in a team")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to create team")
		return
	}

	utils.Success(c, "Team created successfully", gin.H{
		"id":              newTeam.ID,
		"team_name":       newTeam.TeamName,
		"leader_id":       newTeam.LeaderID,
		"invitation_code": newTeam.InvitationCode,
	})
}

func JoinTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		InvitationCode string `json:"invitation_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var targetTeam models.Team
	if err := database.DB.Where("invitation_code = ?", req.InvitationCode).First(&targetTeam).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invalid invitation code")
		return
	}
	if targetTeam.TeamStatus != models.TeamStatusActive {
		utils.Error(c, http.StatusForbidden, "Team is not accepting members")
		return
	}

	newMember := models.TeamMember{
		TeamID:   targetTeam.ID,
		UserID:   userID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now(),
	}
	if err := database.DB.Create(&newMember).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, http.StatusConflict, "You are already in a team.")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to join team")
		return
	}

	utils.Success(c, "Joined team successfully", gin.H{
		"team_id":   targetTeam.ID,
		"team_name": targetTeam.TeamName,
	})
}

func LeaveTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var member models.TeamMember
	if err := database.DB.Where("user_id = ?", userID).First(&member).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "You are not in any team")
		return
	}

	if member.Role == models.TeamRoleLeader {
		utils.Error(c, http.StatusForbidden, "Leader cannot leave team, please transfer leadership or disband the team")
		return
	}

	if err := database.DB.Delete(&member).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to leave team")
		return
	}

	utils.Success(c, "Left team successfully", nil)
}

func KickMember(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))
	memberUserID, _ := strconv.Atoi(c.Param("user_id"))

	leaderID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil || team.LeaderID != leaderID {
		utils.Error(c, http.StatusForbidden, "Permission denied: not the team leader")
		return
	}

	if uint32(memberUserID) == leaderID {
		utils.Error(c, http.StatusBadRequest, "Cannot kick the leader")
		return
	}

	result := database.DB.Where("team_id = ? AND user_id = ?", teamID, memberUserID).Delete(&models.TeamMember{})
	if result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to remove member")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Member not found in this team")
		return
	}

	utils.Success(c, "Member removed successfully", nil)
}

func DisbandTeam(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	leaderID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}

	if team.LeaderID != leaderID {
		utils.Error(c, http.StatusForbidden, "Permission denied: not the team leader")
		return
	}

	// 队伍与成员行一并删除；历史 solve 保留（榜单继续计入）
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to disband team")
		return
	}

	utils.Success(c, "Team disbanded successfully", nil)
}

// GetMyTeam 查询当前用户所在队伍（含成员列表）
func GetMyTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	team, err := services.TeamForUser(userID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if team == nil {
		utils.Success(c, "success", gin.H{"team": nil})
		return
	}

	var full models.Team
	if err := database.DB.Preload("Members.User").First(&full, team.ID).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.Success(c, "success", gin.H{"team": full})
}

// GetTeamDetail 公开的队伍详情，无需登录。
// 隐藏队伍对外一律 404，但带 Token 访问的本队成员仍可查看。
func GetTeamDetail(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.Preload("Members.User").First(&team, teamID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if team.TeamStatus == models.TeamStatusHidden && !isTeamMember(c, team.ID) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}

	utils.Success(c, "success", gin.H{"team": team})
}

// isTeamMember 可选登录场景下判断访问者是否为该队成员
func isTeamMember(c *gin.Context, teamID uint32) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}
	var count int64
	database.DB.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count)
	return count > 0
}
