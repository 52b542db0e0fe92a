// file: services/leaderboard_service.go
package services

import (
	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/models"
)

// LeaderboardLimit 榜单长度上限，仅用于限制展示规模
const LeaderboardLimit = 200

// aggRow 从解题台账聚合出的一行
type aggRow struct {
	GroupID uint32
	Points  uint
	Solves  uint
	FirstID uint64
}

// ComputeLeaderboard 每次读取都从 uitctf_solve 重新聚合（不维护任何
// 增量计数器），eventID 为 nil 时不限赛事。排序规则：总分降序，
// 解题数降序，最早解题记录 ID 升序作为最终决定性平手裁决；
// 名次为排序后的 1 起始位置，分数并列也各占一个名次。
// 题目被删除后残留的 solve 仍计入总分（保留历史成绩）。
func ComputeLeaderboard(eventID *uint32, limit int) ([]dto.IndividualEntry, []dto.TeamEntry, error) {
	if limit <= 0 || limit > LeaderboardLimit {
		limit = LeaderboardLimit
	}

	individuals, err := aggregate("user_id", eventID, limit)
	if err != nil {
		return nil, nil, err
	}
	teams, err := aggregate("team_id", eventID, limit)
	if err != nil {
		return nil, nil, err
	}

	// 补齐名称（批量 IN 查询，查不到的显示 Unknown）
	userNames, err := usernamesByID(groupIDs(individuals))
	if err != nil {
		return nil, nil, err
	}
	teamNames, err := teamNamesByID(groupIDs(teams))
	if err != nil {
		return nil, nil, err
	}

	individualEntries := make([]dto.IndividualEntry, 0, len(individuals))
	for i, row := range individuals {
		name, ok := userNames[row.GroupID]
		if !ok {
			name = "Unknown"
		}
		individualEntries = append(individualEntries, dto.IndividualEntry{
			Rank:     uint(i + 1),
			UserID:   row.GroupID,
			Username: name,
			Points:   row.Points,
			Solves:   row.Solves,
		})
	}

	teamEntries := make([]dto.TeamEntry, 0, len(teams))
	for i, row := range teams {
		name, ok := teamNames[row.GroupID]
		if !ok {
			name = "Unknown"
		}
		teamEntries = append(teamEntries, dto.TeamEntry{
			Rank:     uint(i + 1),
			TeamID:   row.GroupID,
			TeamName: name,
			Points:   row.Points,
			Solves:   row.Solves,
		})
	}

	return individualEntries, teamEntries, nil
}

func aggregate(groupColumn string, eventID *uint32, limit int) ([]aggRow, error) {
	db := database.DB.Model(&models.Solve{}).
		Select(groupColumn + " as group_id, SUM(points) as points, COUNT(*) as solves, MIN(id) as first_id").
		Group(groupColumn).
		Order("points desc, solves desc, first_id asc").
		Limit(limit)
	if eventID != nil {
		db = db.Where("event_id = ?", *eventID)
	}

	var rows []aggRow
	if err := db.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func groupIDs(rows []aggRow) []uint32 {
	ids := make([]uint32, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.GroupID)
	}
	return ids
}

func usernamesByID(ids []uint32) (map[uint32]string, error) {
	result := make(map[uint32]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []models.User
	if err := database.DB.Select("id, username").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u.Username
	}
	return result, nil
}

func teamNamesByID(ids []uint32) (map[uint32]string, error) {
	result := make(map[uint32]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var teams []models.Team
	if err := database.DB.Select("id, team_name").Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	for _, t := range teams {
		result[t.ID] = t.TeamName
	}
	return result, nil
}
