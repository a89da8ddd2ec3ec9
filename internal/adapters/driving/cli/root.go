// Package cli implements the docpipe command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/divami-labs/docpipe-cli/internal/adapters/driven/config/file"
	"github.com/divami-labs/docpipe-cli/internal/adapters/driven/embedding/openai"
	"github.com/divami-labs/docpipe-cli/internal/adapters/driven/llm/gemini"
	filestorage "github.com/divami-labs/docpipe-cli/internal/adapters/driven/storage/file"
	"github.com/divami-labs/docpipe-cli/internal/adapters/driven/summariser"
	chromemindex "github.com/divami-labs/docpipe-cli/internal/adapters/driven/vector/chromem"
	"github.com/divami-labs/docpipe-cli/internal/adapters/driven/vector/pinecone"
	"github.com/divami-labs/docpipe-cli/internal/connectors/google"
	gdrive "github.com/divami-labs/docpipe-cli/internal/connectors/google/drive"
	"github.com/divami-labs/docpipe-cli/internal/connectors/notion"
	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
	"github.com/divami-labs/docpipe-cli/internal/core/services"
	"github.com/divami-labs/docpipe-cli/internal/extractors"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configPath string
	verbose    bool
)

// Services the commands run against. Wired lazily by ensureServices;
// tests inject fakes directly.
var (
	discoveryService  driving.DiscoveryController
	processingService driving.ProcessingController
	documentService   driving.DocumentReader
)

var rootCmd = &cobra.Command{
	Use:   "docpipe",
	Short: "Document ingestion pipeline for a personal knowledge base",
	Long: `docpipe discovers documents in Google Drive and Notion, extracts
their text, summarises them and indexes the summaries in a vector store.

Each document gets one JSON metadata record tracking its lifecycle from
Pending through Processed, Needs OCR or Error.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docpipe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureServices wires the full pipeline from configuration. Tests that
// pre-populate the service variables bypass the wiring entirely.
func ensureServices(ctx context.Context) error {
	if discoveryService != nil && processingService != nil && documentService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := filestorage.NewMetadataStore(cfg.MetadataDir)
	if err != nil {
		return err
	}
	rawArchive, err := filestorage.NewRawTextArchive(cfg.RawDir)
	if err != nil {
		return err
	}
	snapshots, err := filestorage.NewSnapshotWriter(cfg.MetadataDir)
	if err != nil {
		return err
	}

	connectors, err := buildConnectors(ctx, cfg)
	if err != nil {
		return err
	}

	index, err := buildVectorIndex(cfg)
	if err != nil {
		return err
	}

	llm, err := gemini.NewLLMService(ctx, gemini.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return err
	}

	tokens, err := summariser.NewTiktokenCounter(cfg.Summary.TokenModel)
	if err != nil {
		return err
	}

	embedder := openai.NewEmbeddingService(openai.Config{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		APIKey:  cfg.Embedding.APIKey,
	})

	discoveryService = services.NewDiscoveryService(store, connectors, cfg.DocIDPrefix)
	processingService = services.NewProcessingService(
		store,
		connectors,
		extractors.NewDefaultRegistry(),
		summariser.New(llm, tokens, summariser.Config{TokenLimit: cfg.Summary.TokenLimit}),
		embedder,
		index,
		rawArchive,
		snapshots,
	)
	documentService = services.NewDocumentService(store, connectors)
	return nil
}

// buildConnectors creates one connector per configured source system.
func buildConnectors(ctx context.Context, cfg *configfile.Config) (driven.ConnectorSet, error) {
	driveSvc, err := google.NewDriveService(ctx, cfg.Drive.CredentialsFile)
	if err != nil {
		return nil, err
	}
	driveConn, err := gdrive.New(driveSvc, gdrive.Config{RootFolderID: cfg.Drive.FolderID})
	if err != nil {
		return nil, err
	}

	notionConn, err := notion.New(notion.NewClient(cfg.Notion.Token), notion.Config{
		RootPageID: cfg.Notion.RootPageID,
	})
	if err != nil {
		return nil, err
	}

	return driven.ConnectorSet{
		domain.SourceDrive: driveConn,
		domain.SourceNotes: notionConn,
	}, nil
}

// buildVectorIndex selects the configured vector backend.
func buildVectorIndex(cfg *configfile.Config) (driven.VectorIndex, error) {
	switch cfg.Vector.Backend {
	case "pinecone":
		return pinecone.New(pinecone.Config{
			Host:      cfg.Vector.PineconeHost,
			APIKey:    cfg.Vector.PineconeAPIKey,
			IndexName: cfg.Vector.IndexName,
		})
	default:
		return chromemindex.New(chromemindex.Config{
			Path:      cfg.Vector.ChromemPath,
			IndexName: cfg.Vector.IndexName,
		})
	}
}
