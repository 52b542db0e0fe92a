// file: services/ledger_service.go
package services

import (
	"errors"
	"log"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"gorm.io/gorm"
)

// RecordSolve 向赛时台账写入一条解题记录。
// 这里刻意不做"先查后插"：唯一索引 (team_id, challenge_id, event_id)
// 在存储层原子地裁决并发，先插入成功者得分；冲突不是错误，
// 解释为"本队已解出此题"。其余错误（如存储不可用）原样上抛，
// 由调用方按基础设施故障处理。
func RecordSolve(solve *models.Solve) (alreadySolved bool, err error) {
	if err := database.DB.Create(solve).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// RecordPracticeSolve 练习台账，(user_id, challenge_id) 唯一，同样插入判冲突
func RecordPracticeSolve(solve *models.PracticeSolve) (alreadySolved bool, err error) {
	if err := database.DB.Create(solve).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// HasTeamSolved 只读快路径：已解出的队伍不必再跑 bcrypt。
// 注意这只是优化，判重的正确性仍由 RecordSolve 的唯一索引保证。
func HasTeamSolved(teamID, challengeID, eventID uint32) bool {
	var count int64
	database.DB.Model(&models.Solve{}).
		Where("team_id = ? AND challenge_id = ? AND event_id = ?", teamID, challengeID, eventID).
		Count(&count)
	return count > 0
}

// HasUserPracticed 练习模式的只读快路径
func HasUserPracticed(userID, challengeID uint32) bool {
	var count int64
	database.DB.Model(&models.PracticeSolve{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count)
	return count > 0
}

// LogSubmission 记录一次 Flag 提交（正确/错误/重复/练习均记录）
func LogSubmission(challengeID, teamID, userID uint32, flag string, result models.FlagResult, ip string) {
	entry := models.SubmissionLog{
		ChallengeID:    challengeID,
		TeamID:         teamID,
		UserID:         userID,
		SubmittedFlag:  flag,
		FlagResult:     result,
		SubmissionTime: time.Now(),
		IPAddress:      ip,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to write submission log: %v", err)
	}
}

// AddSolveToFeed 将一条新的解题记录添加到动态缓存中
func AddSolveToFeed(solve models.Solve, challenge models.Challenge, team models.Team) {
	feedEntry := models.SolveFeed{
		ChallengeID:   solve.ChallengeID,
		ChallengeName: challenge.ChallengeName,
		TeamID:        solve.TeamID,
		TeamName:      team.TeamName,
		Points:        solve.Points,
		SolvingTime:   solve.CreatedAt,
	}

	database.DB.Create(&feedEntry)

	// 清理旧的记录，保持表的大小
	var count int64
	database.DB.Model(&models.SolveFeed{}).Count(&count)
	if count > 5000 { // 保留最新的 5000 条
		database.DB.Exec("DELETE FROM uitctf_solve_feed WHERE id IN (SELECT id FROM (SELECT id FROM uitctf_solve_feed ORDER BY solving_time ASC LIMIT ?) x)", count-5000)
	}
}

// InvalidateLeaderboardCache 新解题落账后清空 Redis 榜单缓存，
// 确保下次查询重新聚合
func InvalidateLeaderboardCache() {
	if database.RDB == nil {
		return
	}
	for _, pattern := range []string{"leaderboard:*", "scoreboard:*"} {
		keys, err := database.RDB.Keys(database.Ctx, pattern).Result()
		if err == nil && len(keys) > 0 {
			database.RDB.Del(database.Ctx, keys...)
		}
	}
}
