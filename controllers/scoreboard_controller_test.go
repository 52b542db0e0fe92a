// file: controllers/scoreboard_controller_test.go
package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 没有进行中的赛事时，记分板返回 event: null 和空榜而非错误
func TestScoreboardNoRunningEvent(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/scoreboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Nil(t, body["event"])
	assert.Empty(t, body["individuals"])
	assert.Empty(t, body["teams"])
}

// 记分板只统计当前赛事的解题，别的赛事不串分
func TestScoreboardScopedToRunningEvent(t *testing.T) {
	r := newTestServer(t)
	now := time.Now()

	running := models.Event{EventName: "UITCTF 2026", StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}
	require.NoError(t, database.DB.Create(&running).Error)

	alice := seedUser(t, "alice")
	teamA := seedTeam(t, "Team Alpha", alice)

	// 当前赛事一条落账，另一赛事一条历史落账
	require.NoError(t, database.DB.Create(&models.Solve{
		TeamID: teamA.ID, ChallengeID: 1, EventID: running.ID, UserID: alice.ID, Points: 100,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Solve{
		TeamID: teamA.ID, ChallengeID: 2, EventID: running.ID + 1, UserID: alice.ID, Points: 500,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/scoreboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, float64(running.ID), body["event"])
	teams := body["teams"].([]interface{})
	require.Len(t, teams, 1)
	entry := teams[0].(map[string]interface{})
	assert.Equal(t, float64(100), entry["points"])
	assert.Equal(t, float64(1), entry["solves"])

	// 全量榜不限赛事，两条都算
	w = doJSON(t, r, http.MethodGet, "/api/v1/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	teams = body["teams"].([]interface{})
	require.Len(t, teams, 1)
	assert.Equal(t, float64(600), teams[0].(map[string]interface{})["points"])
}

// limit 参数越界时回落到默认上限而不是报错
func TestLeaderboardLimitClamped(t *testing.T) {
	r := newTestServer(t)

	for _, query := range []string{"?limit=0", "?limit=-5", "?limit=100000", ""} {
		w := doJSON(t, r, http.MethodGet, "/api/v1/leaderboard"+query, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, "query %q", query)
	}
}
