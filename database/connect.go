// file: database/connect.go
package database

import (
	"log"
	"os"
	"time"

	"github.com/MiKhin1115/uitCTF/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	dsn := os.Getenv("UITCTF_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(localhost:3306)/uitctf?charset=utf8mb4&parseTime=True&loc=Local"
	}

	var err error
	// TranslateError 必须开启：解题台账依赖 gorm.ErrDuplicatedKey
	// 识别唯一索引冲突（参见 services.RecordSolve）
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 这对于解决 MySQL 的 'wait_timeout' 问题至关重要。
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

func MigrateTables() {
	err := DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
