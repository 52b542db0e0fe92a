// file: main.go
package main

import (
	"log"
	"os"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/routes"
)

func main() {
	database.Connect()
	database.InitRedis()

	// 自动迁移可通过环境变量开启（生产环境建议手动管理表结构）
	if os.Getenv("UITCTF_AUTO_MIGRATE") == "1" {
		database.MigrateTables()
	}

	r := routes.SetupRouter()

	addr := os.Getenv("UITCTF_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("Starting server on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
