// Package file provides the TOML-backed configuration for the docpipe CLI.
// Configuration lives in ~/.docpipe/config.toml; secrets may also be
// supplied through environment variables, which take precedence over the
// file so credentials can stay out of it entirely.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Environment variables overriding the corresponding file entries.
const (
	EnvNotionToken     = "NOTION_TOKEN"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvPineconeAPIKey  = "PINECONE_API_KEY"
	EnvEmbeddingAPIKey = "EMBEDDING_API_KEY"
)

// Defaults applied by Load when the file leaves a field unset.
const (
	DefaultGeminiModel    = "gemini-1.5-flash-latest"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultEmbeddingURL   = "http://localhost:11434/v1"
	DefaultTokenLimit     = 550
	DefaultTokenModel     = "text-embedding-ada-002"
	DefaultVectorBackend  = "chromem"
	DefaultIndexName      = "docpipe-index"
)

// Config holds every setting the pipeline needs.
type Config struct {
	// MetadataDir is where per-document metadata JSONs live.
	MetadataDir string `toml:"metadata_dir"`

	// RawDir is where raw extracted-text JSONs are written.
	RawDir string `toml:"raw_dir"`

	// DocIDPrefix is the document-ID prefix (default "DIVAMI").
	DocIDPrefix string `toml:"doc_id_prefix"`

	Drive     DriveConfig     `toml:"drive"`
	Notion    NotionConfig    `toml:"notion"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Vector    VectorConfig    `toml:"vector"`
	Summary   SummaryConfig   `toml:"summary"`
}

// DriveConfig configures the Google Drive connector.
type DriveConfig struct {
	// CredentialsFile is the path to the service-account JSON (required).
	CredentialsFile string `toml:"credentials_file"`

	// FolderID is the root folder to crawl (required).
	FolderID string `toml:"folder_id"`
}

// NotionConfig configures the Notion connector.
type NotionConfig struct {
	// Token is the integration token (required; env NOTION_TOKEN).
	Token string `toml:"token"`

	// RootPageID is the root page to crawl (required).
	RootPageID string `toml:"root_page_id"`
}

// GeminiConfig configures the summarisation LLM.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API (required; env GEMINI_API_KEY).
	APIKey string `toml:"api_key"`

	// Model is the generation model name.
	Model string `toml:"model"`
}

// EmbeddingConfig configures the OpenAI-compatible embedding endpoint.
type EmbeddingConfig struct {
	// BaseURL points at the endpoint; defaults to a local Ollama server.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// APIKey is optional for local servers (env EMBEDDING_API_KEY).
	APIKey string `toml:"api_key"`
}

// VectorConfig selects and configures the vector index.
type VectorConfig struct {
	// Backend is "pinecone" or "chromem".
	Backend string `toml:"backend"`

	// IndexName names the index; part of every embedding reference.
	IndexName string `toml:"index_name"`

	// PineconeHost is the index host, e.g. "my-index-abc123.svc.pinecone.io".
	PineconeHost string `toml:"pinecone_host"`

	// PineconeAPIKey authenticates upserts (env PINECONE_API_KEY).
	PineconeAPIKey string `toml:"pinecone_api_key"`

	// ChromemPath is the local persistence directory for the chromem backend.
	ChromemPath string `toml:"chromem_path"`
}

// SummaryConfig bounds the summariser output.
type SummaryConfig struct {
	// TokenLimit is the absolute token ceiling on summaries.
	TokenLimit int `toml:"token_limit"`

	// TokenModel is the tiktoken encoding used to count tokens.
	TokenModel string `toml:"token_model"`
}

// DefaultPath returns ~/.docpipe/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docpipe", "config.toml"), nil
}

// Load reads the config file, applies environment overrides and defaults.
// A missing file is not an error; Validate decides what is fatal.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to env + defaults.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg, filepath.Dir(path))
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvNotionToken); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv(EnvPineconeAPIKey); v != "" {
		cfg.Vector.PineconeAPIKey = v
	}
	if v := os.Getenv(EnvEmbeddingAPIKey); v != "" {
		cfg.Embedding.APIKey = v
	}
}

func applyDefaults(cfg *Config, baseDir string) {
	if cfg.MetadataDir == "" {
		cfg.MetadataDir = filepath.Join(baseDir, "metadata")
	}
	if cfg.RawDir == "" {
		cfg.RawDir = filepath.Join(baseDir, "raw")
	}
	if cfg.DocIDPrefix == "" {
		cfg.DocIDPrefix = domain.DefaultIDPrefix
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultGeminiModel
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = DefaultEmbeddingURL
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Vector.Backend == "" {
		cfg.Vector.Backend = DefaultVectorBackend
	}
	if cfg.Vector.IndexName == "" {
		cfg.Vector.IndexName = DefaultIndexName
	}
	if cfg.Vector.ChromemPath == "" {
		cfg.Vector.ChromemPath = filepath.Join(baseDir, "vectors")
	}
	if cfg.Summary.TokenLimit == 0 {
		cfg.Summary.TokenLimit = DefaultTokenLimit
	}
	if cfg.Summary.TokenModel == "" {
		cfg.Summary.TokenModel = DefaultTokenModel
	}
}

// Validate checks that required credentials and IDs are present.
// Failures are fatal for the run.
func (c *Config) Validate() error {
	var missing []string

	if c.Drive.CredentialsFile == "" {
		missing = append(missing, "drive.credentials_file")
	}
	if c.Drive.FolderID == "" {
		missing = append(missing, "drive.folder_id")
	}
	if c.Notion.Token == "" {
		missing = append(missing, "notion.token ($"+EnvNotionToken+")")
	}
	if c.Notion.RootPageID == "" {
		missing = append(missing, "notion.root_page_id")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "gemini.api_key ($"+EnvGeminiAPIKey+")")
	}
	if c.Vector.Backend == "pinecone" {
		if c.Vector.PineconeHost == "" {
			missing = append(missing, "vector.pinecone_host")
		}
		if c.Vector.PineconeAPIKey == "" {
			missing = append(missing, "vector.pinecone_api_key ($"+EnvPineconeAPIKey+")")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", domain.ErrConfigIncomplete, missing)
	}
	if c.Vector.Backend != "pinecone" && c.Vector.Backend != "chromem" {
		return fmt.Errorf("%w: unknown vector backend %q", domain.ErrConfigIncomplete, c.Vector.Backend)
	}
	return nil
}
