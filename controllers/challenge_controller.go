// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/mappers"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/services"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUserID 从中间件上下文读取登录用户
func currentUserID(c *gin.Context) (uint32, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userIDAny.(uint32), true
}

// ListChallenges —— 参赛者可见的题目列表（仅窗口内且可见的题目，需已入队）
func ListChallenges(c *gin.Context) {
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
		utils.Error(c, http.StatusForbidden, "Join a team first")
		return
	}

	now := time.Now()
	var challenges []models.Challenge
	err = database.DB.
		Where("state = ?", models.ChallengeStateVisible).
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Order("points asc, created_at desc").
		Find(&challenges).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	solvedCounts, err := solveCountsByChallenge(challenges)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapModelToItemResp(ch, solvedCounts[ch.ID]))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// solveCountsByChallenge 每次读取时从台账聚合解题数，不在题目行上维护计数器
func solveCountsByChallenge(challenges []models.Challenge) (map[uint32]int64, error) {
	counts := make(map[uint32]int64, len(challenges))
	if len(challenges) == 0 {
		return counts, nil
	}

	ids := make([]uint32, 0, len(challenges))
	for _, ch := range challenges {
		ids = append(ids, ch.ID)
	}

	type countRow struct {
		ChallengeID uint32
		Total       int64
	}
	var rows []countRow
	err := database.DB.Model(&models.Solve{}).
		Select("challenge_id, COUNT(*) as total").
		Where("challenge_id IN ?", ids).
		Group("challenge_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ChallengeID] = row.Total
	}
	return counts, nil
}

// GetChallengeDetail —— 参赛者可见的题目详情
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}
	if challenge.State != models.ChallengeStateVisible {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}
	// 窗口未开的题目不暴露任何内容（与列表、提交接口口径一致）；
	// 窗口已过的题目保持可见，供练习模式使用
	if time.Now().Before(challenge.StartsAt) {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var attachments []models.Attachment
	if err := database.DB.
		Where("challenge_id = ? AND status = ?", id, models.AttachmentStatusActive).
		Order("sort_order ASC, id ASC").
		Find(&attachments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.Success(c, "success", mappers.MapModelToDetailResp(challenge, attachments))
}

// SubmitFlag —— 提交 Flag。窗口内走赛时路径（按队伍判重计分），
// 窗口已过走练习路径（按个人判重不计分），窗口未开一律 403。
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	// 参数校验先于任何存储访问
	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()
	if req.Flag == "" {
		utils.Error(c, http.StatusBadRequest, "Flag is required")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Challenge not found")
			return
		}
		log.Printf("Failed to load challenge %d: %v", challengeID, err)
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if challenge.State != models.ChallengeStateVisible {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	now := time.Now()
	switch {
	case challenge.IsActive(now):
		submitEventMode(c, &challenge, userID, req.Flag)
	case challenge.IsExpired(now):
		submitPracticeMode(c, &challenge, userID, req.Flag)
	default:
		// 窗口未开：不验 Flag，不泄露对错
		utils.Error(c, http.StatusForbidden, "Challenge not active.")
	}
}

// submitEventMode 赛时路径：必须入队；得分记到队伍
func submitEventMode(c *gin.Context, challenge *models.Challenge, userID uint32, flag string) {
	team, err := services.TeamForUser(userID)
	if err != nil {
		log.Printf("Failed to resolve team for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if team == nil {
		utils.Error(c, http.StatusForbidden, "You must create or join a team first.")
		return
	}

	// 快路径：本队已解出则直接返回，省掉一次 bcrypt
	if services.HasTeamSolved(team.ID, challenge.ID, challenge.EventID) {
		services.LogSubmission(challenge.ID, team.ID, userID, flag, models.FlagResultDuplicate, c.ClientIP())
		c.JSON(http.StatusOK, dto.SubmitFlagResp{Correct: true, AlreadySolved: true, Points: 0})
		return
	}

	if !challenge.CheckFlag(flag) {
		services.LogSubmission(challenge.ID, team.ID, userID, flag, models.FlagResultWrong, c.ClientIP())
		c.JSON(http.StatusOK, gin.H{"correct": false, "error": "Incorrect flag"})
		return
	}

	solve := models.Solve{
		TeamID:      team.ID,
		ChallengeID: challenge.ID,
		EventID:     challenge.EventID,
		UserID:      userID,
		Points:      challenge.Points,
	}
	alreadySolved, err := services.RecordSolve(&solve)
	if err != nil {
		log.Printf("Failed to record solve (team=%d challenge=%d): %v", team.ID, challenge.ID, err)
		utils.Error(c, http.StatusInternalServerError, "Failed to record solve.")
		return
	}
	if alreadySolved {
		// 并发撞线：队友抢先落账，按已解出返回
		services.LogSubmission(challenge.ID, team.ID, userID, flag, models.FlagResultDuplicate, c.ClientIP())
		c.JSON(http.StatusOK, dto.SubmitFlagResp{Correct: true, AlreadySolved: true, Points: 0})
		return
	}

	services.LogSubmission(challenge.ID, team.ID, userID, flag, models.FlagResultCorrect, c.ClientIP())
	services.AddSolveToFeed(solve, *challenge, *team)
	services.InvalidateLeaderboardCache()

	c.JSON(http.StatusOK, dto.SubmitFlagResp{Correct: true, AlreadySolved: false, Points: challenge.Points})
}

// submitPracticeMode 练习路径：按个人判重，不计比赛分
func submitPracticeMode(c *gin.Context, challenge *models.Challenge, userID uint32, flag string) {
	if services.HasUserPracticed(userID, challenge.ID) {
		services.LogSubmission(challenge.ID, 0, userID, flag, models.FlagResultDuplicate, c.ClientIP())
		c.JSON(http.StatusOK, dto.SubmitFlagResp{Correct: true, AlreadySolved: true, Points: 0, Practice: true})
		return
	}

	if !challenge.CheckFlag(flag) {
		services.LogSubmission(challenge.ID, 0, userID, flag, models.FlagResultWrong, c.ClientIP())
		c.JSON(http.StatusOK, gin.H{"correct": false, "error": "Incorrect flag"})
		return
	}

	solve := models.PracticeSolve{UserID: userID, ChallengeID: challenge.ID}
	alreadySolved, err := services.RecordPracticeSolve(&solve)
	if err != nil {
		log.Printf("Failed to record practice solve (user=%d challenge=%d): %v", userID, challenge.ID, err)
		utils.Error(c, http.StatusInternalServerError, "Failed to record solve.")
		return
	}

	services.LogSubmission(challenge.ID, 0, userID, flag, models.FlagResultPractice, c.ClientIP())
	c.JSON(http.StatusOK, dto.SubmitFlagResp{Correct: true, AlreadySolved: alreadySolved, Points: 0, Practice: true})
}

// ========== 管理员接口 ==========

// CreateChallenge —— 使用 DTO + 手动映射 + Normalize 兼容
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.Normalize()

	if len(req.ChallengeName) < 2 || len(req.ChallengeName) > 80 {
		utils.Error(c, http.StatusBadRequest, "Title must be 2-80 characters.")
		return
	}
	if !models.Categories[models.ChallengeCategory(req.Category)] {
		utils.Error(c, http.StatusBadRequest, "Invalid category.")
		return
	}
	if req.Points == 0 || req.Points > 10000 {
		utils.Error(c, http.StatusBadRequest, "Points must be 1-10000.")
		return
	}
	if len(req.Flag) < 4 || len(req.Flag) > 200 {
		utils.Error(c, http.StatusBadRequest, "Flag must be 4-200 characters.")
		return
	}

	startsAt, err1 := time.Parse(time.RFC3339, req.StartsAt)
	endsAt, err2 := time.Parse(time.RFC3339, req.EndsAt)
	if err1 != nil || err2 != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid start/end time.")
		return
	}
	if !endsAt.After(startsAt) {
		utils.Error(c, http.StatusBadRequest, "End time must be after start time.")
		return
	}

	var event models.Event
	if err := database.DB.First(&event, req.EventID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Event not found.")
		return
	}

	challenge := mappers.MapCreateReqToModel(req, startsAt, endsAt)
	if err := challenge.SetFlag(req.Flag); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to hash flag")
		return
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create challenge")
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": challenge.ID})
}

// UpdateChallenge —— 管理员编辑题目（部分字段）
func UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.State != nil {
		state := models.ChallengeState(*req.State)
		if state != models.ChallengeStateVisible && state != models.ChallengeStateHidden {
			utils.Error(c, http.StatusBadRequest, "Invalid state.")
			return
		}
		challenge.State = state
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Points != nil {
		if *req.Points == 0 || *req.Points > 10000 {
			utils.Error(c, http.StatusBadRequest, "Points must be 1-10000.")
			return
		}
		challenge.Points = *req.Points
	}
	if req.Flag != nil {
		flag := strings.TrimSpace(*req.Flag)
		if len(flag) < 4 || len(flag) > 200 {
			utils.Error(c, http.StatusBadRequest, "Flag must be 4-200 characters.")
			return
		}
		if err := challenge.SetFlag(flag); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to hash flag")
			return
		}
	}
	if req.StartsAt != nil {
		startsAt, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid start time.")
			return
		}
		challenge.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid end time.")
			return
		}
		challenge.EndsAt = endsAt
	}
	if !challenge.EndsAt.After(challenge.StartsAt) {
		utils.Error(c, http.StatusBadRequest, "End time must be after start time.")
		return
	}

	if err := database.DB.Save(&challenge).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update challenge")
		return
	}
	utils.Success(c, "Challenge updated successfully", nil)
}

// DeleteChallenge —— 删除题目。历史 solve 不级联删除，
// 残留记录继续计入榜单（保留历史成绩）。
func DeleteChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Challenge{}, id)
	if result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete challenge")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}
	utils.Success(c, "Challenge deleted successfully", nil)
}

// AdminGetChallengeDetail —— 管理员查询题目详情（不受可见性与窗口限制）
func AdminGetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var attachments []models.Attachment
	if err := database.DB.
		Where("challenge_id = ?", id).
		Order("sort_order ASC, id ASC").
		Find(&attachments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	detail := mappers.MapModelToDetailResp(challenge, attachments)
	utils.Success(c, "success", gin.H{
		"challenge":  detail,
		"event_id":   challenge.EventID,
		"state":      challenge.State,
		"created_at": challenge.CreatedAt.Format("2006-01-02 15:04:05"),
		"updated_at": challenge.UpdatedAt.Format("2006-01-02 15:04:05"),
	})
}

// AdminListChallenges —— 管理员查询题目列表（可见/隐藏均可，支持筛选+分页）
func AdminListChallenges(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	state := strings.TrimSpace(c.Query("state")) // visible/hidden
	kw := strings.TrimSpace(c.Query("keyword"))  // 模糊匹配 name/description
	eventIDStr := c.Query("event_id")
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Challenge{})

	if category != "" {
		db = db.Where("category = ?", category)
	}
	if state != "" {
		db = db.Where("state = ?", models.ChallengeState(state))
	}
	if eventIDStr != "" {
		if eid, err := strconv.Atoi(eventIDStr); err == nil && eid > 0 {
			db = db.Where("event_id = ?", eid)
		}
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("challenge_name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var list []models.Challenge
	if err := db.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	items := make([]dto.AdminChallengeItemResp, 0, len(list))
	for _, ch := range list {
		items = append(items, dto.AdminChallengeItemResp{
			ID:            ch.ID,
			ChallengeName: ch.ChallengeName,
			EventID:       ch.EventID,
			Category:      string(ch.Category),
			Points:        ch.Points,
			State:         string(ch.State),
			StartsAt:      ch.StartsAt.Format("2006-01-02 15:04:05"),
			EndsAt:        ch.EndsAt.Format("2006-01-02 15:04:05"),
			UpdatedAt:     ch.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"challenges": items,
	})
}
