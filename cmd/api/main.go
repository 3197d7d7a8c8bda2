package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiergate.org/internal/auth"
	"tiergate.org/internal/config"
	"tiergate.org/internal/httpapi"
	"tiergate.org/internal/obs"
	"tiergate.org/internal/prefs"
)

var version = "0.3.1"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("TIERGATE_COMMIT"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.PGDSN == "" {
		log.Fatal("missing DSN: set TIERGATE_PG_DSN")
	}

	db, err := auth.OpenDB(cfg.PGDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	codec, err := auth.NewCodec(cfg.AuthSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	users := auth.NewPGStore(db)
	svc, err := auth.NewService(users, auth.NewHasher(), codec, auth.WithTokenTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	prefsSvc, err := prefs.NewService(prefs.NewPGStore(db), users)
	if err != nil {
		log.Fatalf("prefs service: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, svc, codec, prefsSvc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting tiergate-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
