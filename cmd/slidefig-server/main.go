// Command slidefig-server runs the HTTP relay that exposes the placement
// engine to notebooks and remote clients.
//
// Without a backend flag the server refuses to start: there is no native
// automation binding in this build, so either -dry-run (in-memory
// presentation, useful for integration tests) or -pptx FILE (read-only view
// of a saved presentation) must be given.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/memory"
	"github.com/tsawler/slidefig/pptxfile"
	"github.com/tsawler/slidefig/relay"
)

func main() {
	// .env is optional; flags and real environment variables win over it.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("SLIDEFIG_CONFIG"), "path to a YAML config file")
	host := flag.String("host", "", "interface to bind to (overrides config)")
	port := flag.Int("port", 0, "port to listen on (overrides config)")
	dryRun := flag.Bool("dry-run", false, "serve an in-memory presentation instead of a live host")
	pptxPath := flag.String("pptx", "", "serve a read-only view of the given .pptx file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[WARN] %v", err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[WARN] %v", err)
	}

	app, cleanup, err := selectBackend(*dryRun, *pptxPath)
	if err != nil {
		log.Fatalf("[WARN] %v", err)
	}
	defer cleanup()

	srv := relay.NewServer(cfg, app, nil)
	log.Fatal(srv.ListenAndServe())
}

// loadConfig merges, in increasing precedence: defaults, the YAML file, and
// the SLIDEFIG_HOST / SLIDEFIG_PORT environment variables (which a .env file
// may provide).
func loadConfig(path string) (relay.Config, error) {
	cfg := relay.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = relay.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("SLIDEFIG_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("SLIDEFIG_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("SLIDEFIG_PORT: %w", err)
		}
		cfg.Port = p
	}
	return cfg, nil
}

func selectBackend(dryRun bool, pptxPath string) (automation.Application, func(), error) {
	switch {
	case pptxPath != "":
		doc, err := pptxfile.Open(pptxPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", pptxPath, err)
		}
		log.Printf("[INFO] serving read-only view of %s", pptxPath)
		return doc, func() { doc.Close() }, nil
	case dryRun:
		log.Printf("[INFO] serving an in-memory presentation (dry run)")
		return memory.New(960, 540), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: no native binding in this build, use -dry-run or -pptx FILE",
			automation.ErrUnavailable)
	}
}
