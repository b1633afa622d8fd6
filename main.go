package main

import (
	"context"
	"log"
	"time"

	"gopairs/internal/config"
	"gopairs/internal/container"
	"gopairs/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer c.Close()

	if appConfig.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := c.InitWithDatabase(ctx); err != nil {
			log.Printf("Suite history disabled: %v", err)
		}
		cancel()
	}

	server, err := ui.NewServer(c.ReportService, ui.Config{
		Labels:   c.Labels,
		FileName: appConfig.Report.FileName,
	})
	if err != nil {
		log.Fatalf("Failed to create UI server: %v", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
