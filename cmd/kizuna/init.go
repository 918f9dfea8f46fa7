package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/ports"
	"github.com/ersonp/kizuna-core/internal/domain/services"
	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
	embedder "github.com/ersonp/kizuna-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/kizuna-core/internal/infrastructure/store/sqlite"
	"github.com/ersonp/kizuna-core/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	var skipVector bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new kizuna database",
		Long:  "Creates a .kizuna directory with default configuration, sets up the local database and seeds the starter question bank.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, skipVector)
		},
	}

	cmd.Flags().BoolVar(&skipVector, "skip-vector", false, "Skip Qdrant collection setup (search unavailable until 'kizuna index')")

	return cmd
}

func runInit(cmd *cobra.Command, skipVector bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("kizuna already initialized in %s", cwd)
	}

	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	var vectorDB ports.VectorDB
	if !skipVector {
		repo, err := qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("connecting to qdrant: %w", err)
		}
		defer repo.Close()
		vectorDB = repo
	}

	initHandler := handlers.NewInitHandler(store, vectorDB, services.NewQuestionService(store))
	result, err := initHandler.HandleInit(ctx, embedder.VectorSize)
	if err != nil {
		return err
	}

	fmt.Printf("Created database: %s\n", cfg.DatabasePath(cwd))
	if result.SeededQuestions > 0 {
		fmt.Printf("Seeded %d starter questions\n", result.SeededQuestions)
	}
	if result.CollectionReady {
		fmt.Printf("Created Qdrant collection: %s\n", cfg.Qdrant.Collection)
	}
	fmt.Println("Kizuna initialized successfully!")

	return nil
}
