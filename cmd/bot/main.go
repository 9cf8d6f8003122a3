package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/client"
)

func main() {
	cfg, err := client.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.WithField("bot", cfg.Name)
	c := client.New(cfg, logger)
	if _, err := c.Join(ctx, cfg.Name); err != nil {
		log.Fatalln(err)
	}
	logger.Infof("playing against %s", cfg.Server)

	err = client.NewBot(c, cfg).Play(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalln(err)
	}
}
