package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopairs/internal/api"
	"gopairs/internal/config"
	"gopairs/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	srv := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           api.NewHandler(c.ReportService, appConfig.Report.FileName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown failed: %v", err)
	}
}
