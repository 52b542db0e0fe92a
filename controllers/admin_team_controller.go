// file: controllers/admin_team_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AdminGetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	search := c.Query("search")

	var teams []models.Team
	var total int64

	db := database.DB.Model(&models.Team{}).Preload("Leader")

	if search != "" {
		db = db.Where("team_name LIKE ?", "%"+search+"%")
	}

	db.Count(&total)
	db.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&teams)

	type TeamInfo struct {
		ID             uint32            `json:"id"`
		TeamName       string            `json:"team_name"`
		LeaderUsername string            `json:"leader_username"`
		TeamStatus     models.TeamStatus `json:"team_status"`
		MemberCount    int64             `json:"member_count"`
	}

	resultTeams := make([]TeamInfo, 0, len(teams))
	for _, team := range teams {
		var memberCount int64
		database.DB.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)

		resultTeams = append(resultTeams, TeamInfo{
			ID:             team.ID,
			TeamName:       team.TeamName,
			LeaderUsername: team.Leader.Username,
			TeamStatus:     team.TeamStatus,
			MemberCount:    memberCount,
		})
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"teams": resultTeams,
	})
}

func AdminUpdateTeamStatus(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req struct {
		Status models.TeamStatus `json:"status" binding:"required,oneof=active banned hidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}

	if err := database.DB.Model(&team).Update("team_status", req.Status).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update team status")
		return
	}

	utils.Success(c, "Team status updated successfully", gin.H{
		"team_id": team.ID,
		"status":  req.Status,
	})
}

func AdminDeleteTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	// 硬删除队伍与成员关系；历史 solve 保留
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, teamID).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete team")
		return
	}

	utils.Success(c, "Team deleted successfully by admin", nil)
}
