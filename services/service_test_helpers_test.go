// file: services/service_test_helpers_test.go
package services

import (
	"testing"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 用内存 SQLite 替换全局 database.DB。
// 单连接（MaxOpenConns=1）既保证 :memory: 库在连接池下不丢表，
// 也让并发用例在同一连接上串行执行。
func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	require.NoError(t, database.DB.Create(value).Error)
}
