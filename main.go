package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "barberbook/internal/config"
	intdb "barberbook/internal/db"
	router "barberbook/internal/http"
	"barberbook/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	if err := intdb.EnsureSchema(db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}
	if err := intdb.SeedHaircuts(db); err != nil {
		log.Printf("warning: haircut seed failed: %v", err)
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	engine := services.BookingService{HoldTTL: env.HoldTTL}
	sweeper := services.Sweeper{Reclaim: engine.ReclaimExpired, Interval: env.SweepInterval}
	go func() {
		if err := sweeper.Run(sweepCtx); err != nil && err != context.Canceled {
			log.Printf("sweeper stopped: %v", err)
		}
	}()

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
