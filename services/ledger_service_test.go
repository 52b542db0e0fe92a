// file: services/ledger_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSolveFirstWriteWins(t *testing.T) {
	newTestDB(t)

	solve := models.Solve{TeamID: 1, ChallengeID: 2, EventID: 3, UserID: 4, Points: 100}
	alreadySolved, err := RecordSolve(&solve)
	require.NoError(t, err)
	assert.False(t, alreadySolved)
	assert.NotZero(t, solve.ID)

	// 同队同题同赛事的第二次落账被唯一索引拒绝，解释为已解出
	dup := models.Solve{TeamID: 1, ChallengeID: 2, EventID: 3, UserID: 5, Points: 100}
	alreadySolved, err = RecordSolve(&dup)
	require.NoError(t, err)
	assert.True(t, alreadySolved)

	var count int64
	database.DB.Model(&models.Solve{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordSolveDistinctKeysAllLand(t *testing.T) {
	newTestDB(t)

	// 不同队伍、不同题目、不同赛事互不影响
	keys := []models.Solve{
		{TeamID: 1, ChallengeID: 1, EventID: 1, UserID: 1, Points: 50},
		{TeamID: 2, ChallengeID: 1, EventID: 1, UserID: 2, Points: 50},
		{TeamID: 1, ChallengeID: 2, EventID: 1, UserID: 1, Points: 75},
		{TeamID: 1, ChallengeID: 1, EventID: 2, UserID: 1, Points: 50},
	}
	for i := range keys {
		alreadySolved, err := RecordSolve(&keys[i])
		require.NoError(t, err)
		assert.False(t, alreadySolved)
	}

	var count int64
	database.DB.Model(&models.Solve{}).Count(&count)
	assert.EqualValues(t, 4, count)
}

func TestRecordSolveAtMostOnceUnderConcurrency(t *testing.T) {
	newTestDB(t)

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID uint32) {
			defer wg.Done()
			solve := models.Solve{TeamID: 7, ChallengeID: 9, EventID: 1, UserID: userID, Points: 100}
			alreadySolved, err := RecordSolve(&solve)
			if err != nil {
				errs <- err
				return
			}
			results <- alreadySolved
		}(uint32(i + 1))
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("RecordSolve returned unexpected error: %v", err)
	}

	winners := 0
	duplicates := 0
	for alreadySolved := range results {
		if alreadySolved {
			duplicates++
		} else {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent submission may win")
	assert.Equal(t, attempts-1, duplicates)

	var count int64
	database.DB.Model(&models.Solve{}).Count(&count)
	assert.EqualValues(t, 1, count, "exactly one ledger row must survive")
}

func TestRecordPracticeSolvePerUser(t *testing.T) {
	newTestDB(t)

	first := models.PracticeSolve{UserID: 1, ChallengeID: 5}
	alreadySolved, err := RecordPracticeSolve(&first)
	require.NoError(t, err)
	assert.False(t, alreadySolved)

	second := models.PracticeSolve{UserID: 1, ChallengeID: 5}
	alreadySolved, err = RecordPracticeSolve(&second)
	require.NoError(t, err)
	assert.True(t, alreadySolved)

	// 其他用户练习同一题不受影响
	other := models.PracticeSolve{UserID: 2, ChallengeID: 5}
	alreadySolved, err = RecordPracticeSolve(&other)
	require.NoError(t, err)
	assert.False(t, alreadySolved)
}

func TestHasTeamSolved(t *testing.T) {
	newTestDB(t)

	assert.False(t, HasTeamSolved(1, 2, 3))
	mustCreate(t, &models.Solve{TeamID: 1, ChallengeID: 2, EventID: 3, UserID: 4, Points: 10})
	assert.True(t, HasTeamSolved(1, 2, 3))
	assert.False(t, HasTeamSolved(1, 2, 4), "same team and challenge in another event is unsolved")
}

func TestLogSubmissionAndFeed(t *testing.T) {
	newTestDB(t)

	LogSubmission(2, 1, 4, "flag{x}", models.FlagResultWrong, "10.0.0.1")

	var logs []models.SubmissionLog
	require.NoError(t, database.DB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.FlagResultWrong, logs[0].FlagResult)
	assert.Equal(t, "flag{x}", logs[0].SubmittedFlag)

	solve := models.Solve{TeamID: 1, ChallengeID: 2, EventID: 3, UserID: 4, Points: 100}
	mustCreate(t, &solve)
	AddSolveToFeed(solve, models.Challenge{ChallengeName: "pwn me"}, models.Team{TeamName: "h4x"})

	var feed []models.SolveFeed
	require.NoError(t, database.DB.Find(&feed).Error)
	require.Len(t, feed, 1)
	assert.Equal(t, "pwn me", feed[0].ChallengeName)
	assert.Equal(t, "h4x", feed[0].TeamName)
	assert.EqualValues(t, 100, feed[0].Points)
}
