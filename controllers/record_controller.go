// file: controllers/record_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
)

// GetTeamSolves 查询队伍解题记录
func GetTeamSolves(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var solves []models.Solve
	database.DB.Where("team_id = ?", teamID).Order("created_at asc").Find(&solves)

	type SolveInfo struct {
		ChallengeID   uint32 `json:"challenge_id"`
		ChallengeName string `json:"challenge_name"`
		Points        uint   `json:"points"`
		SolvedBy      uint32 `json:"solved_by"`
		SolvingTime   string `json:"solving_time"`
	}
	result := make([]SolveInfo, 0, len(solves))
	for _, solve := range solves {
		// 题目可能已被删除，名称允许为空
		var chal models.Challenge
		database.DB.Select("challenge_name").First(&chal, solve.ChallengeID)
		result = append(result, SolveInfo{
			ChallengeID:   solve.ChallengeID,
			ChallengeName: chal.ChallengeName,
			Points:        solve.Points,
			SolvedBy:      solve.UserID,
			SolvingTime:   solve.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}

// GetFlagLogs 管理员查询 Flag 提交日志
func GetFlagLogs(c *gin.Context) {
	type LogDetail struct {
		ID             uint64    `json:"id"`
		ChallengeID    uint32    `json:"challenge_id"`
		ChallengeName  string    `json:"challenge_name"`
		TeamID         uint32    `json:"team_id"`
		TeamName       string    `json:"team_name"`
		UserID         uint32    `json:"user_id"`
		Username       string    `json:"username"`
		SubmittedFlag  string    `json:"submitted_flag"`
		FlagResult     string    `json:"flag_result"`
		SubmissionTime time.Time `json:"submission_time"`
		IPAddress      string    `json:"ip_address"`
		Suspected      bool      `json:"suspected"`
	}

	db := database.DB.Table("uitctf_flag_log l").
		Select("l.id, l.challenge_id, c.challenge_name, l.team_id, t.team_name, l.user_id, u.username, l.submitted_flag, l.flag_result, l.submission_time, l.ip_address, l.suspected").
		Joins("LEFT JOIN uitctf_challenge c ON l.challenge_id = c.id").
		Joins("LEFT JOIN uitctf_team t ON l.team_id = t.id").
		Joins("LEFT JOIN uitctf_user u ON l.user_id = u.id")

	if teamID := c.Query("team_id"); teamID != "" {
		db = db.Where("l.team_id = ?", teamID)
	}
	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("l.challenge_id = ?", challengeID)
	}
	if userID := c.Query("user_id"); userID != "" {
		db = db.Where("l.user_id = ?", userID)
	}
	if result := c.Query("result"); result != "" {
		db = db.Where("l.flag_result = ?", result)
	}
	if suspected := c.Query("suspected"); suspected == "1" {
		db = db.Where("l.suspected = ?", true)
	}

	var results []LogDetail
	db.Order("l.submission_time desc").Limit(500).Find(&results)

	utils.Success(c, "success", results)
}

// MarkSuspectSubmission 管理员手动标记可疑提交
func MarkSuspectSubmission(c *gin.Context) {
	logID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Suspected bool `json:"suspected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := database.DB.Model(&models.SubmissionLog{}).Where("id = ?", logID).Update("suspected", req.Suspected)
	if result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update submission log")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Submission log not found")
		return
	}

	utils.Success(c, "Flag submission marked as suspected", nil)
}
