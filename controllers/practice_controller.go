// file: controllers/practice_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
)

// ListPracticeChallenges —— 练习题库：窗口已关闭的题目对所有登录用户开放，
// 附带本人是否已练习解出的标记。无需入队。
func ListPracticeChallenges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	now := time.Now()
	var challenges []models.Challenge
	err := database.DB.
		Where("state = ?", models.ChallengeStateVisible).
		Where("ends_at < ?", now).
		Order("ends_at desc").
		Find(&challenges).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var solved []models.PracticeSolve
	if err := database.DB.Select("challenge_id").Where("user_id = ?", userID).Find(&solved).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	solvedSet := make(map[uint32]bool, len(solved))
	for _, s := range solved {
		solvedSet[s.ChallengeID] = true
	}

	items := make([]dto.PracticeChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, dto.PracticeChallengeItemResp{
			ID:            ch.ID,
			ChallengeName: ch.ChallengeName,
			Category:      string(ch.Category),
			Points:        ch.Points,
			EndsAt:        ch.EndsAt.Format("2006-01-02 15:04:05"),
			Solved:        solvedSet[ch.ID],
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}
