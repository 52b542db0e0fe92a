// file: controllers/scoreboard_controller.go
package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/services"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
)

// scoreboardCacheTTL 较短的缓存有效期，保证排行榜的准实时性；
// 新解题落账时还会主动失效（见 services.InvalidateLeaderboardCache）
const scoreboardCacheTTL = 15 * time.Second

func readCache(key string, out interface{}) bool {
	if database.RDB == nil {
		return false
	}
	val, err := database.RDB.Get(database.Ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func writeCache(key string, v interface{}) {
	if database.RDB == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		database.RDB.Set(database.Ctx, key, data, scoreboardCacheTTL)
	}
}

func limitFromQuery(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.LeaderboardLimit)))
	if limit <= 0 || limit > services.LeaderboardLimit {
		limit = services.LeaderboardLimit
	}
	return limit
}

// GetLeaderboard —— 全量榜（不限赛事），无需登录
func GetLeaderboard(c *gin.Context) {
	limit := limitFromQuery(c)
	cacheKey := fmt.Sprintf("leaderboard:all:%d", limit)

	var cached dto.LeaderboardResp
	if readCache(cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	individuals, teams, err := services.ComputeLeaderboard(nil, limit)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.LeaderboardResp{Individuals: individuals, Teams: teams}
	writeCache(cacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// GetScoreboard —— 当前赛事记分板；没有进行中的赛事时返回空榜
func GetScoreboard(c *gin.Context) {
	limit := limitFromQuery(c)

	event, err := services.CurrentEvent(time.Now())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if event == nil {
		c.JSON(http.StatusOK, dto.ScoreboardResp{
			Event:       nil,
			Individuals: []dto.IndividualEntry{},
			Teams:       []dto.TeamEntry{},
		})
		return
	}

	cacheKey := fmt.Sprintf("scoreboard:%d:%d", event.ID, limit)
	var cached dto.ScoreboardResp
	if readCache(cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	individuals, teams, err := services.ComputeLeaderboard(&event.ID, limit)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.ScoreboardResp{Event: &event.ID, Individuals: individuals, Teams: teams}
	writeCache(cacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

// GetSolveFeed —— 查询实时解题动态
func GetSolveFeed(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var results []models.SolveFeed
	database.DB.Order("solving_time desc").Limit(limit).Find(&results)

	utils.Success(c, "success", results)
}
