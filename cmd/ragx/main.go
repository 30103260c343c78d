// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	ragxragas "github.com/ReesavGupta/ragxragas"
	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/ai/openai"
	"github.com/ReesavGupta/ragxragas/ingestion"
	"github.com/ReesavGupta/ragxragas/reembed"
	badgerstore "github.com/ReesavGupta/ragxragas/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ragx",
		Usage: "Hybrid retrieval engine with result caching",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Add documents to the corpus and embed them",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Target chunk size in runes",
						Value: 1000,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source tag attached to every chunk's metadata",
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Run a retrieval query against the corpus",
				ArgsUsage: "QUERY...",
				Action:    queryCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Result budget per query",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "rerank",
						Usage: "Enable second-stage reranking",
					},
					&cli.Float64Flag{
						Name:  "rerank-floor",
						Usage: "Drop reranked candidates below this score (implies --rerank)",
						Value: -1,
					},
					&cli.IntFlag{
						Name:  "compress-max",
						Usage: "Keep at most this many candidates after compression (0 disables)",
					},
					&cli.Float64Flag{
						Name:  "compress-threshold",
						Usage: "Relevance threshold for compression",
						Value: 0.1,
					},
					&cli.Float64Flag{
						Name:  "dense-weight",
						Usage: "Fusion weight of the dense side",
						Value: 0.5,
					},
					&cli.Float64Flag{
						Name:  "sparse-weight",
						Usage: "Fusion weight of the sparse side",
						Value: 0.5,
					},
				),
			},
			{
				Name:   "rebuild-index",
				Usage:  "Rebuild the lexical index from the stored corpus",
				Action: rebuildIndexCommand,
				Flags:  engineFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed the whole corpus with a new embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that opens the engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "redis",
			Usage: "Redis address for the result cache (host:port); embedded store if unset",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "llm-host",
			Usage: "LLM service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "nomic-embed-text",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Model used for query classification",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "scorer-model",
			Usage: "Model used for rerank scoring (defaults to classifier-model)",
		},
	}
}

func buildEngine(c *cli.Context, extra ...ragxragas.EngineOption) (*ragxragas.Engine, error) {
	aiOpts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithClassifierModel(c.String("classifier-model")),
	}
	if host := c.String("llm-host"); host != "" {
		aiOpts = append(aiOpts, ai.WithLLMHost(host))
	} else {
		aiOpts = append(aiOpts, ai.WithLLMHost(c.String("embedding-host")))
	}
	if model := c.String("scorer-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithScorerModel(model))
	}

	aiConfig := ai.NewConfig(aiOpts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []ragxragas.EngineOption{ragxragas.WithAIConfig(aiConfig)}
	if addr := c.String("redis"); addr != "" {
		opts = append(opts, ragxragas.WithRedisCache(addr))
	}
	opts = append(opts, extra...)

	return ragxragas.NewEngine(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	engine, err := buildEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline(ingestion.WithChunkSize(c.Int("chunk-size")))
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	total := 0
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		metadata := map[string]string{"file": path}
		if source := c.String("source"); source != "" {
			metadata["source"] = source
		}
		opts := &ingestion.IngestOptions{Metadata: metadata}

		chunks, err := pipeline.Ingest(ctx, []string{string(data)}, opts)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		total += len(chunks)
		fmt.Fprintf(os.Stderr, "%s: %d chunks\n", path, len(chunks))
	}

	version, err := pipeline.Commit(ctx)
	if err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	if err := engine.RebuildSparseIndex(ctx); err != nil {
		return fmt.Errorf("failed to rebuild lexical index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d chunks, corpus version %d\n", total, version)
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engineOpts := []ragxragas.EngineOption{
		ragxragas.WithTopK(c.Int("top-k")),
		ragxragas.WithFusionWeights(c.Float64("dense-weight"), c.Float64("sparse-weight")),
	}
	if floor := c.Float64("rerank-floor"); floor >= 0 {
		engineOpts = append(engineOpts, ragxragas.WithRerankFloor(floor))
	} else if c.Bool("rerank") {
		engineOpts = append(engineOpts, ragxragas.WithRerank())
	}
	if max := c.Int("compress-max"); max > 0 {
		engineOpts = append(engineOpts, ragxragas.WithCompression(max, c.Float64("compress-threshold")))
	}

	engine, err := buildEngine(c, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	answer, err := engine.Retrieve(context.Background(), query)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	result := answer.Result
	fmt.Printf("outcome=%s category=%s cached=%v corpus=%d\n",
		result.Outcome, answer.Category, answer.CacheHit, result.CorpusVersion)
	for i, candidate := range result.Candidates {
		fmt.Printf("%d: [%0.3f] %s\n", i+1, candidate.RerankScore, candidate.Content)
	}
	return nil
}

func rebuildIndexCommand(c *cli.Context) error {
	engine, err := buildEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	if err := engine.RebuildSparseIndex(context.Background()); err != nil {
		return fmt.Errorf("failed to rebuild lexical index: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Lexical index rebuilt")
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badgerstore.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badgerstore.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// Classifier and scorer are not used for reembedding
		ai.WithLLMHost(c.String("embedding-host")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))

	return reembedder.Run(ctx)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
