package main

import (
	"fmt"
	"log"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/config"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/database"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// open database and run migrations
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.Setup(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
