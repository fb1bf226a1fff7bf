package main

import (
	"fmt"
	"log"
	"net/http"

	imageidentifier "github.com/menta2k/image-identifier"
	"github.com/menta2k/image-identifier/internal/config"
	"github.com/menta2k/image-identifier/internal/handler"
	"github.com/menta2k/image-identifier/internal/router"
	"github.com/menta2k/image-identifier/pkg/admission"
	"github.com/menta2k/image-identifier/pkg/dispatch"
	"github.com/menta2k/image-identifier/pkg/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	visionClient, err := imageidentifier.NewVisionClient(imageidentifier.BackendOptions{
		Provider: cfg.Vision.Provider,
		APIKey:   cfg.Vision.APIKey,
		Model:    cfg.Vision.Model,
		URL:      cfg.Vision.URL,
		Timeout:  cfg.Vision.Timeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create vision client: %w", err)
	}

	admitter := admission.NewWithConfig(visionClient, admission.Config{
		MaxBytes:         cfg.Admission.MaxBytes(),
		MinDimension:     cfg.Admission.MinDimension,
		TransportMaxSide: cfg.Admission.TransportMaxSide,
		TransportQuality: cfg.Admission.TransportQuality,
	})
	sess := session.New(admitter, dispatch.New(visionClient))

	identifyH := handler.NewIdentifyHandler(sess)
	r := router.Setup(identifyH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("naturelens listening on %s (vision provider: %s)", cfg.Server.Port, cfg.Vision.Provider)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
