// file: dto/leaderboard.go
package dto

// IndividualEntry 个人榜单条目，rank 为 1 起始名次
type IndividualEntry struct {
	Rank     uint   `json:"rank"`
	UserID   uint32 `json:"userId"`
	Username string `json:"username"`
	Points   uint   `json:"points"`
	Solves   uint   `json:"solves"`
}

// TeamEntry 队伍榜单条目
type TeamEntry struct {
	Rank     uint   `json:"rank"`
	TeamID   uint32 `json:"teamId"`
	TeamName string `json:"teamName"`
	Points   uint   `json:"points"`
	Solves   uint   `json:"solves"`
}

// LeaderboardResp 全量榜（不限赛事）
type LeaderboardResp struct {
	Individuals []IndividualEntry `json:"individuals"`
	Teams       []TeamEntry       `json:"teams"`
}

// ScoreboardResp 赛事记分板；无进行中赛事时 event 为 null、榜单为空
type ScoreboardResp struct {
	Event       *uint32           `json:"event"`
	Individuals []IndividualEntry `json:"individuals"`
	Teams       []TeamEntry       `json:"teams"`
}
