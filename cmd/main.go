package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/patel24vivek/billing-system/internal/config"
	httpapi "github.com/patel24vivek/billing-system/internal/http"
	"github.com/patel24vivek/billing-system/internal/persistence"
	"github.com/patel24vivek/billing-system/internal/repository"
	"github.com/patel24vivek/billing-system/internal/service"

	_ "github.com/patel24vivek/billing-system/docs"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load() // optional .env, absence is fine

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	files, err := persistence.NewFileStore(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("open data dir")
	}

	store := repository.NewMemoryStore()
	ledger := repository.NewMemoryLedger(store)
	tx := repository.NewMemoryTx(store)

	if err := service.LoadState(files, store, log); err != nil {
		log.WithError(err).Fatal("load saved state")
	}

	mirror := service.NewMirror(store, ledger, files, log)
	settingsSvc, err := service.NewSettingsService(files, mirror)
	if err != nil {
		log.WithError(err).Fatal("load settings")
	}
	productsSvc := service.NewProductService(store, mirror)
	cartSvc := service.NewCartService(store)
	checkoutSvc := service.NewCheckoutService(store, ledger, tx, cartSvc, settingsSvc, mirror, log)
	reportsSvc := service.NewReportService(ledger)

	srv := httpapi.NewServer(productsSvc, cartSvc, checkoutSvc, reportsSvc, settingsSvc)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Infof("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
