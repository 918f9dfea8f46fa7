package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/services"
	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
	embedder "github.com/ersonp/kizuna-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/kizuna-core/internal/infrastructure/store/sqlite"
	"github.com/ersonp/kizuna-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config       *config.Config
	Person       *handlers.PersonHandler
	Relationship *handlers.RelationshipHandler
	Log          *handlers.LogHandler
	Question     *handlers.QuestionHandler
	Graph        *handlers.GraphHandler
	Profile      *handlers.ProfileHandler
	History      *handlers.HistoryHandler
	Import       *handlers.ImportHandler
	Export       *handlers.ExportHandler
}

// withDeps loads config, opens the local database and builds all handlers
// that need only the entity store, then calls the provided function. It
// handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	people := services.NewPersonService(store)
	relationships := services.NewRelationshipService(store)
	interactions := services.NewInteractionService(store)
	questions := services.NewQuestionService(store)
	filter := services.NewFilterService(store)
	graph := services.NewGraphService(store)
	history := services.NewHistoryService(store)
	profiling := services.NewProfilingService(store)

	deps := &Deps{
		Config:       cfg,
		Person:       handlers.NewPersonHandler(people, filter, relationships, history, profiling),
		Relationship: handlers.NewRelationshipHandler(people, relationships),
		Log:          handlers.NewLogHandler(people, interactions, questions),
		Question:     handlers.NewQuestionHandler(questions),
		Graph:        handlers.NewGraphHandler(people, graph),
		Profile:      handlers.NewProfileHandler(people, profiling),
		History:      handlers.NewHistoryHandler(people, history),
		Import:       handlers.NewImportHandler(people),
		Export:       handlers.NewExportHandler(people, relationships, questions, interactions, history, profiling),
	}

	return fn(deps)
}

// withSearchHandler additionally connects Qdrant and the embedder. Only the
// search and index commands pay the cost of those connections.
func withSearchHandler(fn func(*handlers.SearchHandler) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	vectorDB, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer vectorDB.Close()

	emb, err := embedder.NewEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	people := services.NewPersonService(store)
	search := services.NewSearchService(store, vectorDB, emb, embedder.VectorSize)

	return fn(handlers.NewSearchHandler(people, search))
}
