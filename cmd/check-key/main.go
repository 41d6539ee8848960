// Command check-key validates the GEMINI_API_KEY from the environment
// or a .env file by issuing one lightweight models-list request.
//
// Exit codes: 0 key accepted (or opaque 200), 2 missing credential,
// 3 network failure, 4 unauthorized/forbidden, 5 unexpected HTTP status.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/liuzl/gemini-tools/gemini"
	"github.com/liuzl/gemini-tools/internal/config"
	"github.com/liuzl/gemini-tools/keycheck"
)

func main() {
	// Diagnostics go to stderr; the user-facing report stays on stdout.
	flag.Set("alsologtostderr", "true")
	defer glog.Flush()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("check-key", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to optional YAML configuration file")
	envFile := fs.String("env-file", ".env", "Path to .env file (optional)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load %s: %v\n", *envFile, err)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Configuration error:", err)
		return 2
	}
	if cfg.APIKey == "" {
		fmt.Println("GEMINI_API_KEY not found in environment or .env file.")
		return 2
	}

	fmt.Printf("Found GEMINI_API_KEY (ends in %s). Performing basic checks...\n", keycheck.KeyHint(cfg.APIKey))
	fmt.Println(keycheck.KeyFormatHint(cfg.APIKey))

	opts := []gemini.ClientOption{gemini.WithTimeout(cfg.CheckTimeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, gemini.WithAPIVersion(cfg.APIVersion))
	}
	client := gemini.NewClient(cfg.APIKey, opts...)

	fmt.Printf("- Requesting models endpoint: %s\n", client.Endpoint("/models"))

	report := keycheck.Check(context.Background(), client)
	report.Fprint(os.Stdout)
	return report.Outcome.ExitCode()
}
