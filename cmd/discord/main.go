// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "server-scribe/internal/command"

	"server-scribe/internal/cache"
	"server-scribe/internal/catalog"
	"server-scribe/internal/config"
	"server-scribe/internal/discord"
	v "server-scribe/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := catalog.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := store.ApplyMigrations(); err != nil {
		log.Fatal("[ERR] Failed to apply catalog migrations: ", err)
	}

	mirror := cache.New()
	if err := mirror.Refresh(ctx, store); err != nil {
		log.Println("[WARN] Initial catalog cache refresh failed:", err)
	}

	bot := discord.NewBot(cfg, store, mirror)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
