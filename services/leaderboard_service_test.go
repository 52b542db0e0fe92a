// file: services/leaderboard_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/MiKhin1115/uitCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScoringFixture(t *testing.T) {
	t.Helper()

	mustCreate(t, &models.User{Username: "alice", Password: "password123", Email: "alice@x.io"})
	mustCreate(t, &models.User{Username: "bob", Password: "password123", Email: "bob@x.io"})
	mustCreate(t, &models.User{Username: "carol", Password: "password123", Email: "carol@x.io"})

	mustCreate(t, &models.Team{TeamName: "Team A", LeaderID: 1, InvitationCode: "AAAA11112222"})
	mustCreate(t, &models.Team{TeamName: "Team B", LeaderID: 3, InvitationCode: "BBBB11112222"})

	// Team A: alice 100 + bob 50 = 150 / 2 solves
	// Team B: carol 100 = 100 / 1 solve
	mustCreate(t, &models.Solve{TeamID: 1, ChallengeID: 1, EventID: 1, UserID: 1, Points: 100})
	mustCreate(t, &models.Solve{TeamID: 1, ChallengeID: 2, EventID: 1, UserID: 2, Points: 50})
	mustCreate(t, &models.Solve{TeamID: 2, ChallengeID: 1, EventID: 1, UserID: 3, Points: 100})
}

func TestComputeLeaderboardOrderingAndRanks(t *testing.T) {
	newTestDB(t)
	seedScoringFixture(t)

	individuals, teams, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)

	require.Len(t, teams, 2)
	assert.Equal(t, "Team A", teams[0].TeamName)
	assert.EqualValues(t, 150, teams[0].Points)
	assert.EqualValues(t, 2, teams[0].Solves)
	assert.EqualValues(t, 1, teams[0].Rank)
	assert.Equal(t, "Team B", teams[1].TeamName)
	assert.EqualValues(t, 2, teams[1].Rank)

	require.Len(t, individuals, 3)
	// alice 与 carol 同为 100 分 1 题：最早的 solve 记录 ID 裁决平手
	assert.Equal(t, "alice", individuals[0].Username)
	assert.Equal(t, "carol", individuals[1].Username)
	assert.Equal(t, "bob", individuals[2].Username)
	assert.EqualValues(t, 1, individuals[0].Rank)
	assert.EqualValues(t, 2, individuals[1].Rank)
	assert.EqualValues(t, 3, individuals[2].Rank)
}

func TestComputeLeaderboardDeterministic(t *testing.T) {
	newTestDB(t)
	seedScoringFixture(t)

	i1, t1, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	i2, t2, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)

	assert.Equal(t, i1, i2)
	assert.Equal(t, t1, t2)
}

func TestComputeLeaderboardEventScoped(t *testing.T) {
	newTestDB(t)
	seedScoringFixture(t)

	// 另一赛事的 solve 不应计入 event 1 的记分板
	mustCreate(t, &models.Solve{TeamID: 2, ChallengeID: 9, EventID: 2, UserID: 3, Points: 500})

	eventID := uint32(1)
	_, teams, err := ComputeLeaderboard(&eventID, 0)
	require.NoError(t, err)

	require.Len(t, teams, 2)
	assert.Equal(t, "Team A", teams[0].TeamName)
	assert.EqualValues(t, 150, teams[0].Points)
	assert.EqualValues(t, 100, teams[1].Points)

	// 全量榜则包含全部赛事
	_, allTeams, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "Team B", allTeams[0].TeamName)
	assert.EqualValues(t, 600, allTeams[0].Points)
}

func TestComputeLeaderboardMonotonicAgainstNewSolves(t *testing.T) {
	newTestDB(t)
	seedScoringFixture(t)

	_, before, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	rankBefore := map[string]uint{}
	for _, entry := range before {
		rankBefore[entry.TeamName] = entry.Rank
	}

	// Team A 再解一题：未受影响的 Team B 名次不得上升到 Team A 之前
	mustCreate(t, &models.Solve{TeamID: 1, ChallengeID: 3, EventID: 1, UserID: 1, Points: 200})

	_, after, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	for _, entry := range after {
		if entry.TeamName == "Team B" {
			assert.GreaterOrEqual(t, entry.Rank, rankBefore["Team B"])
		}
	}
	assert.Equal(t, "Team A", after[0].TeamName)
}

func TestComputeLeaderboardOrphanedSolvesStillCount(t *testing.T) {
	newTestDB(t)
	seedScoringFixture(t)

	// ChallengeID 1/2 并不存在对应题目行——模拟题目被删除后的残留 solve
	_, teams, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.EqualValues(t, 150, teams[0].Points)
}

func TestComputeLeaderboardUnknownNames(t *testing.T) {
	newTestDB(t)

	// solve 指向不存在的用户与队伍：榜单仍聚合，名称兜底 Unknown
	mustCreate(t, &models.Solve{TeamID: 42, ChallengeID: 1, EventID: 1, UserID: 99, Points: 10})

	individuals, teams, err := ComputeLeaderboard(nil, 0)
	require.NoError(t, err)
	require.Len(t, individuals, 1)
	require.Len(t, teams, 1)
	assert.Equal(t, "Unknown", individuals[0].Username)
	assert.Equal(t, "Unknown", teams[0].TeamName)
}

func TestComputeLeaderboardLimit(t *testing.T) {
	newTestDB(t)

	for i := 1; i <= 5; i++ {
		mustCreate(t, &models.Solve{TeamID: uint32(i), ChallengeID: 1, EventID: 1, UserID: uint32(i), Points: uint(i * 10)})
	}

	individuals, teams, err := ComputeLeaderboard(nil, 3)
	require.NoError(t, err)
	assert.Len(t, individuals, 3)
	assert.Len(t, teams, 3)
	assert.EqualValues(t, 50, teams[0].Points)
}

func TestCurrentEvent(t *testing.T) {
	newTestDB(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mustCreate(t, &models.Event{EventName: "past", StartsAt: now.Add(-48 * time.Hour), EndsAt: now.Add(-24 * time.Hour)})
	mustCreate(t, &models.Event{EventName: "running", StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)})

	event, err := CurrentEvent(now)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "running", event.EventName)

	event, err = CurrentEvent(now.Add(72 * time.Hour))
	require.NoError(t, err)
	assert.Nil(t, event)
}
