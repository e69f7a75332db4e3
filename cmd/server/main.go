package main

import (
	"fmt"
	"log"

	"acting-office/internal/config"
	"acting-office/internal/database"
	"acting-office/internal/server"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg.DBDSN)

	r := server.NewRouter(cfg, db)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
