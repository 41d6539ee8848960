// Command generate sends one text-generation prompt to the Generative
// Language service. It tries the vendor SDK surfaces first and falls
// back to the legacy REST generateText endpoint when none succeed.
//
// Exit codes: 0 result obtained via either path, 2 missing credential
// or usage error, 3 REST fallback transport failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/liuzl/gemini-tools/gemini"
	"github.com/liuzl/gemini-tools/genrun"
	"github.com/liuzl/gemini-tools/internal/config"
	"github.com/liuzl/gemini-tools/internal/textutil"
)

const resultDisplayLimit = 4000

func main() {
	flag.Set("alsologtostderr", "true")
	defer glog.Flush()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	model := fs.String("model", "", "Model name (default taken from configuration)")
	prompt := fs.String("prompt", "", "Prompt / input text to generate from (required)")
	configPath := fs.String("config", "", "Path to optional YAML configuration file")
	envFile := fs.String("env-file", ".env", "Path to .env file (optional)")
	noSDK := fs.Bool("no-sdk", false, "Skip the vendor SDK and call the REST endpoint directly")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "--prompt is required")
		fs.Usage()
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
		fmt.Println("GEMINI_API_KEY not found in environment or .env. Set it and retry.")
		return 2
	}

	m := *model
	if m == "" {
		m = cfg.DefaultModel
	}
	fmt.Printf("Using model: %s\n", m)

	var sdk genrun.Generator
	if !*noSDK && !cfg.DisableSDK {
		sdk = genrun.NewSDKGenerator(cfg.APIKey)
	}

	opts := []gemini.ClientOption{gemini.WithTimeout(cfg.GenerateTimeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, gemini.WithAPIVersion(cfg.APIVersion))
	}
	runner := &genrun.Runner{
		SDK:      sdk,
		Fallback: gemini.NewClient(cfg.APIKey, opts...),
	}

	result, err := runner.Run(context.Background(), m, *prompt)
	if err != nil {
		fmt.Println("REST request failed:", err)
		return 3
	}

	if result.Note != "" {
		fmt.Printf("Vendor SDK not used: %s. Fell back to REST endpoint.\n", result.Note)
	}
	fmt.Printf("--- Result (%s) ---\n", result.Source)
	fmt.Println(textutil.Truncate(result.Text, resultDisplayLimit))
	return 0
}
