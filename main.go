package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"teamsheet/pkg/upstream"
)

var (
	cfg       Config
	jwtSecret []byte
	stats     *upstream.Client
)

func main() {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		log.Fatal("config: ", err)
	}
	jwtSecret = []byte(cfg.JWTSecret)
	stats = upstream.NewClient(cfg.StatsBaseURL)

	// Support a lightweight migrate command: `./teamsheet migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	r := gin.Default()

	setupRoutes(r)

	r.Run(cfg.ListenAddr)
}
