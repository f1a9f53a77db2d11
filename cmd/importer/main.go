package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/config"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/importer"
	adminsvc "bosko-storefront/internal/service/admin"
)

// staticToken hands the backend a fixed admin credential.
type staticToken struct {
	token  string
	logger *log.Logger
}

func (s staticToken) Token() string { return s.token }

func (s staticToken) Invalidate(context.Context) {
	s.logger.Fatalf("backend rejected the admin token; sign in again and retry")
}

func main() {
	var (
		filePath string
		token    string
	)
	flag.StringVar(&filePath, "file", "", "Path to a product or category CSV file")
	flag.StringVar(&token, "token", os.Getenv("BOSKO_ADMIN_TOKEN"), "Admin bearer token (defaults to $BOSKO_ADMIN_TOKEN)")
	flag.Parse()

	if filePath == "" || token == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)

	who, err := identity.ValidCredential(token, time.Now())
	if err != nil {
		logger.Fatalf("admin token: %v", err)
	}
	if !who.HasRole(domain.RoleAdmin) {
		logger.Fatalf("token for %s has role %s; Admin required", who.Email, who.Role)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	kind, err := importer.DetectKind(f)
	if err != nil {
		logger.Fatalf("detect file kind: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logger.Fatalf("rewind file: %v", err)
	}

	backend := api.NewBackend(api.Options{
		BaseURL:   cfg.BackendBaseURL,
		AssetBase: cfg.BackendAssetURL,
		Timeout:   cfg.APITimeout,
		Logger:    logger,
	})
	admin := adminsvc.New(backend.Client(staticToken{token: token, logger: logger}))
	imp := importer.NewCSVImporter(f, admin, logger)

	start := time.Now()
	count, err := imp.Run(context.Background())
	if err != nil {
		logger.Fatalf("import failed after %d %s: %v", count, kind, err)
	}

	fmt.Printf("Imported %d %s into %s in %s\n", count, kind, cfg.BackendBaseURL, time.Since(start).Truncate(time.Millisecond))
}
