// file: models/challenge_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindowChallenge(startsAt, endsAt time.Time) Challenge {
	return Challenge{
		ChallengeName: "window test",
		Category:      CategoryMisc,
		Points:        100,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
	}
}

func TestChallengeIsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		startsAt time.Time
		endsAt   time.Time
		active   bool
	}{
		{"inside window", now.Add(-time.Hour), now.Add(time.Hour), true},
		{"exactly at start", now, now.Add(time.Hour), true},
		{"exactly at end", now.Add(-time.Hour), now, true},
		{"before window", now.Add(time.Minute), now.Add(time.Hour), false},
		{"after window", now.Add(-2 * time.Hour), now.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newWindowChallenge(tt.startsAt, tt.endsAt)
			assert.Equal(t, tt.active, ch.IsActive(now))
		})
	}
}

func TestChallengeIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	expired := newWindowChallenge(now.Add(-2*time.Hour), now.Add(-time.Minute))
	assert.True(t, expired.IsExpired(now))

	// 练习模式是赛时窗口的严格补集：窗口内或未开都不可练习
	active := newWindowChallenge(now.Add(-time.Hour), now.Add(time.Hour))
	assert.False(t, active.IsExpired(now))

	upcoming := newWindowChallenge(now.Add(time.Hour), now.Add(2*time.Hour))
	assert.False(t, upcoming.IsExpired(now))

	// 窗口终点恰好等于 now 仍属于赛时
	boundary := newWindowChallenge(now.Add(-time.Hour), now)
	assert.False(t, boundary.IsExpired(now))
	assert.True(t, boundary.IsActive(now))
}

func TestChallengeFlagRoundTrip(t *testing.T) {
	var ch Challenge
	require.NoError(t, ch.SetFlag("uitCTF{correct_horse_battery_staple}"))

	assert.NotContains(t, ch.FlagHash, "correct_horse", "flag hash must not embed the plaintext")
	assert.True(t, ch.CheckFlag("uitCTF{correct_horse_battery_staple}"))
	assert.False(t, ch.CheckFlag("uitCTF{wrong}"))
	assert.False(t, ch.CheckFlag(""))
}

func TestChallengeCheckFlagIsRepeatable(t *testing.T) {
	var ch Challenge
	require.NoError(t, ch.SetFlag("flag{twice}"))

	// 校验是纯函数：重复校验同一正确 Flag 不是错误
	assert.True(t, ch.CheckFlag("flag{twice}"))
	assert.True(t, ch.CheckFlag("flag{twice}"))
}

func TestCategoriesFixedSet(t *testing.T) {
	assert.Len(t, Categories, 8)
	assert.True(t, Categories[CategoryWeb])
	assert.False(t, Categories[ChallengeCategory("Hardware")])
}
