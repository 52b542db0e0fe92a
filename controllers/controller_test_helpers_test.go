// file: controllers/controller_test_helpers_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/routes"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer 用内存 SQLite 顶替全局 database.DB 并返回完整路由。
// Redis 不参与测试：榜单缓存读写对 RDB==nil 自动降级。
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Event{},
		&models.Challenge{},
		&models.Attachment{},
		&models.Solve{},
		&models.PracticeSolve{},
		&models.SubmissionLog{},
		&models.SolveFeed{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})

	return routes.SetupRouter()
}

func seedUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "password123", Email: username + "@x.io"}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedTeam(t *testing.T, name string, leader models.User, members ...models.User) models.Team {
	t.Helper()
	team := models.Team{TeamName: name, LeaderID: leader.ID, InvitationCode: utils.GenerateInvitationCode(12)}
	require.NoError(t, database.DB.Create(&team).Error)
	require.NoError(t, database.DB.Create(&models.TeamMember{
		TeamID: team.ID, UserID: leader.ID, Role: models.TeamRoleLeader, JoinedAt: time.Now(),
	}).Error)
	for _, m := range members {
		require.NoError(t, database.DB.Create(&models.TeamMember{
			TeamID: team.ID, UserID: m.ID, Role: models.TeamRoleMember, JoinedAt: time.Now(),
		}).Error)
	}
	return team
}

func seedChallenge(t *testing.T, name, flag string, points uint, startsAt, endsAt time.Time) models.Challenge {
	t.Helper()
	challenge := models.Challenge{
		EventID:       1,
		ChallengeName: name,
		Category:      models.CategoryMisc,
		Points:        points,
		State:         models.ChallengeStateVisible,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
	}
	require.NoError(t, challenge.SetFlag(flag))
	require.NoError(t, database.DB.Create(&challenge).Error)
	return challenge
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "body: %s", w.Body.String())
	return result
}

func submitFlag(t *testing.T, r *gin.Engine, challengeID uint32, token, flag string) *httptest.ResponseRecorder {
	t.Helper()
	path := fmt.Sprintf("/api/v1/challenges/%d/submit", challengeID)
	return doJSON(t, r, http.MethodPost, path, token, gin.H{"flag": flag})
}
