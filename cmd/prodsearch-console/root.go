package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	domintent "github.com/kailas-cloud/prodsearch/internal/domain/intent"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	catalogrepo "github.com/kailas-cloud/prodsearch/internal/repository/catalog"
	openaiIntent "github.com/kailas-cloud/prodsearch/internal/transport/openai"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
	"github.com/kailas-cloud/prodsearch/internal/version"
)

const defaultCatalog = "products.json"

type options struct {
	model    string
	baseURL  string
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := options{}
	def := domain.DefaultIntentConfig()

	cmd := &cobra.Command{
		Use:   "prodsearch-console [products_file]",
		Short: "Interactive natural-language product search",
		Long: `Reads a product catalog (JSON or YAML) and answers free-text
queries by extracting structured criteria with an OpenAI-compatible model.
The API key is read from OPENAI_API_KEY.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultCatalog
			if len(args) == 1 {
				path = args[0]
			}
			err := run(cmd, path, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", def.Model, "chat model used for criteria extraction")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "extraction request timeout")
	cmd.Flags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, path string, opts options) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("please set your OPENAI_API_KEY environment variable")
	}

	logger, err := logpkg.NewLogger("console", opts.logLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalogrepo.LoadFile(path)
	switch {
	case errors.Is(err, domain.ErrCatalogNotFound):
		return fmt.Errorf("products file '%s' not found", path)
	case err != nil:
		return fmt.Errorf("products file '%s': %w", path, err)
	}
	logger.Debug("catalog loaded", zap.String("path", path), zap.Int("products", cat.Len()))

	def := domain.DefaultIntentConfig()
	extractor := domintent.NewNormalizedExtractor(openaiIntent.NewExtractor(&openaiIntent.Config{
		APIKey:      apiKey,
		BaseURL:     opts.baseURL,
		Model:       opts.model,
		MaxQueryLen: def.MaxQueryLen,
		Timeout:     opts.timeout,
		Provider:    "openai",
		Logger:      logger,
	}))

	svc := searchuc.New(cat, extractor)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)
	return runREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc)
}
