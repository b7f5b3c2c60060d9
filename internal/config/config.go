package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// index backends
const (
	BackendChromem  = "chromem"
	BackendPGVector = "pgvector"
)

// llm providers
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	// ProviderMock embeds offline with hashed word buckets.
	ProviderMock = "mock"
)

type Config struct {
	UploadDir    string           `yaml:"upload_dir"`
	RAG          RAGConfig        `yaml:"rag"`
	Index        IndexConfig      `yaml:"index"`
	EmbedLLM     LLMConfig        `yaml:"embed_llm"`
	InferenceLLM LLMConfig        `yaml:"inference_llm"`
	Generation   GenerationConfig `yaml:"generation"`
	Database     DatabaseConfig   `yaml:"database"`
	Log          LogConfig        `yaml:"log"`
}

// RAGConfig controls chunking and retrieval.
type RAGConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	TopK          int    `yaml:"top_k"`
	BatchSize     int    `yaml:"batch_size"`
	EncryptionKey string `yaml:"encryption_key"`
}

// IndexConfig selects where the vector index lives.
type IndexConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	Compress   bool   `yaml:"compress"`
}

// LLMConfig describes one model endpoint. Key is never read from yaml,
// it is resolved from the KeyEnv environment variable.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	KeyEnv   string `yaml:"key_env"`
	Key      string `yaml:"-"`
}

type GenerationConfig struct {
	NumCards             int     `yaml:"num_cards"`
	NumQuestions         int     `yaml:"num_questions"`
	FlashcardTemperature float64 `yaml:"flashcard_temperature"`
	QuizTemperature      float64 `yaml:"quiz_temperature"`
	SummaryTemperature   float64 `yaml:"summary_temperature"`
	AskTemperature       float64 `yaml:"ask_temperature"`
}

type DatabaseConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UploadDir: "data",
		RAG: RAGConfig{
			ChunkSize:    500,
			ChunkOverlap: 100,
			TopK:         5,
			BatchSize:    32,
		},
		Index: IndexConfig{
			Backend:    BackendChromem,
			Path:       "db",
			Collection: "study_chunks",
		},
		EmbedLLM: LLMConfig{
			Provider: ProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "all-minilm",
		},
		InferenceLLM: LLMConfig{
			Provider: ProviderOpenAI,
			Model:    "gpt-3.5-turbo",
			KeyEnv:   "OPENAI_API_KEY",
		},
		Generation: GenerationConfig{
			NumCards:             10,
			NumQuestions:         5,
			FlashcardTemperature: 0.5,
			QuizTemperature:      0.5,
			SummaryTemperature:   0.3,
			AskTemperature:       0.3,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a yaml file over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.resolveKeys()
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolveKeys()
	return cfg, nil
}

// Save writes the config as yaml.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// chromem encrypts snapshots with AES-256
const encryptionKeyLen = 32

func (c *Config) Validate() error {
	if c.RAG.ChunkSize <= 0 {
		return fmt.Errorf("rag.chunk_size must be positive, got %d", c.RAG.ChunkSize)
	}
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("rag.chunk_overlap must be in [0, %d), got %d", c.RAG.ChunkSize, c.RAG.ChunkOverlap)
	}
	if c.RAG.TopK <= 0 {
		return fmt.Errorf("rag.top_k must be positive, got %d", c.RAG.TopK)
	}
	if n := len(c.RAG.EncryptionKey); n != 0 && n != encryptionKeyLen {
		return fmt.Errorf("rag.encryption_key must be %d bytes, got %d", encryptionKeyLen, n)
	}
	switch c.Index.Backend {
	case BackendChromem, BackendPGVector:
	default:
		return fmt.Errorf("unknown index backend: %q", c.Index.Backend)
	}
	if c.Index.Backend == BackendPGVector && c.Database.DSN == "" {
		return errors.New("database.dsn is required for the pgvector backend")
	}
	switch c.EmbedLLM.Provider {
	case ProviderOllama, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("embed_llm: unknown provider %q", c.EmbedLLM.Provider)
	}
	switch c.InferenceLLM.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("inference_llm: unknown provider %q", c.InferenceLLM.Provider)
	}
	return nil
}

// resolveKeys fills the API keys from the environment.
func (c *Config) resolveKeys() {
	if c.EmbedLLM.KeyEnv != "" {
		c.EmbedLLM.Key = os.Getenv(c.EmbedLLM.KeyEnv)
	}
	if c.InferenceLLM.KeyEnv != "" {
		c.InferenceLLM.Key = os.Getenv(c.InferenceLLM.KeyEnv)
	}
}
