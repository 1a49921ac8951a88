// Command models prints the Gemini models available to GEMINI_API_KEY.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/FACorreiaa/cohana-api/internal/httpclient"
	"github.com/FACorreiaa/cohana-api/internal/llm"
	"github.com/FACorreiaa/cohana-api/pkg/config"
)

const listTimeout = 30 * time.Second

type modelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	client, err := llm.NewGeminiChatClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model,
		httpclient.New(httpclient.Options{Timeout: cfg.Server.HTTPTimeout}))
	if err != nil {
		return err
	}

	fmt.Println("Checking available models...")
	return printGeminiModels(ctx, client, os.Stdout)
}

// printGeminiModels writes one quoted name per line for every model whose
// name mentions gemini.
func printGeminiModels(ctx context.Context, lister modelLister, w io.Writer) error {
	names, err := lister.ListModels(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		if !strings.Contains(name, "gemini") {
			continue
		}
		if _, err := fmt.Fprintf(w, "%q\n", name); err != nil {
			return err
		}
	}
	return nil
}
