package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"greencampus/config"
	"greencampus/database"
	"greencampus/middleware"
	"greencampus/router"
)

var version = "dev"

// @title GreenCampus API
// @version 1.0
// @description Carbon-neutral campus portal backend: menus, boards, pages, energy datasets and statistics.
// @BasePath /
func main() {
	var (
		configPath  = flag.String("config", "", "path to config file")
		port        = flag.String("port", "", "listen port, overrides config")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("greencampus %s\n", version)
		os.Exit(0)
	}

	cfg := config.MustLoadConfig(*configPath)
	if *port != "" {
		cfg.Server.Port = *port
	}
	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("database init: %v", err)
	}
	database.InitRedis(cfg)
	middleware.InitSession(cfg)

	r := router.SetupRouter(cfg)
	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
