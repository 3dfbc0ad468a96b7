package model

import "time"

// Config holds all engine and CLI configuration.
// Loaded from ~/.baitcheck/config.yaml with BAITCHECK_* env overrides.
type Config struct {
	// Seed drives every pseudo-random choice (splits, bootstrap sampling,
	// weight init). Zero means derive from the wall clock, which is
	// non-deterministic by design.
	Seed int64 `yaml:"seed"`

	Bayes        BayesConfig        `yaml:"bayes"`
	Logistic     LogisticConfig     `yaml:"logistic"`
	Forest       ForestConfig       `yaml:"forest"`
	CNN          CNNConfig          `yaml:"cnn"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Cache        CacheConfig        `yaml:"cache"`
	LLM          LLMConfig          `yaml:"llm"`
	Output       OutputConfig       `yaml:"output"`
}

// BayesConfig configures the Gaussian naive Bayes classifier
type BayesConfig struct {
	MinSamples  int `yaml:"min_samples"`
	MinPerClass int `yaml:"min_per_class"`
}

// LogisticConfig configures the gradient-descent linear classifier
type LogisticConfig struct {
	TestRatio     float64 `yaml:"test_ratio"`
	LearningRate  float64 `yaml:"learning_rate"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	MinSamples    int     `yaml:"min_samples"`
	MinPerClass   int     `yaml:"min_per_class"`
}

// ForestConfig configures the bagged decision forest
type ForestConfig struct {
	Trees       int `yaml:"trees"`
	MaxDepth    int `yaml:"max_depth"`
	MinSplit    int `yaml:"min_split"`
	MinSamples  int `yaml:"min_samples"`
	MinPerClass int `yaml:"min_per_class"`
}

// CNNConfig configures the toy convolutional text classifier
type CNNConfig struct {
	VocabSize       int           `yaml:"vocab_size"`
	SequenceLength  int           `yaml:"sequence_length"`
	EmbeddingDim    int           `yaml:"embedding_dim"`
	FilterWidths    []int         `yaml:"filter_widths"`
	FiltersPerWidth int           `yaml:"filters_per_width"`
	Epochs          int           `yaml:"epochs"`
	LearningRate    float64       `yaml:"learning_rate"`
	TestRatio       float64       `yaml:"test_ratio"`
	Timeout         time.Duration `yaml:"timeout"`
	MinSamples      int           `yaml:"min_samples"`
	MinPerClass     int           `yaml:"min_per_class"`
}

// OrchestratorConfig configures multi-model training and prediction
type OrchestratorConfig struct {
	// FastTimeout bounds each of the simple models during TrainAll;
	// CNNTimeout bounds the convolutional model.
	FastTimeout       time.Duration `yaml:"fast_timeout"`
	CNNTimeout        time.Duration `yaml:"cnn_timeout"`
	PredictWorkers    int           `yaml:"predict_workers"`
	ProgressPerSecond float64       `yaml:"progress_per_second"`
}

// CacheConfig configures the orchestrator prediction cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// LLMConfig configures the optional comparison-narrative generator.
// The narrative never affects classification results.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Seed: 0,
		Bayes: BayesConfig{
			MinSamples:  4,
			MinPerClass: 1,
		},
		Logistic: LogisticConfig{
			TestRatio:     0.2,
			LearningRate:  0.1,
			MaxIterations: 1000,
			Tolerance:     1e-6,
			MinSamples:    4,
			MinPerClass:   1,
		},
		Forest: ForestConfig{
			Trees:       30,
			MaxDepth:    10,
			MinSplit:    2,
			MinSamples:  4,
			MinPerClass: 1,
		},
		CNN: CNNConfig{
			VocabSize:       500,
			SequenceLength:  32,
			EmbeddingDim:    16,
			FilterWidths:    []int{3, 4, 5},
			FiltersPerWidth: 8,
			Epochs:          30,
			LearningRate:    0.05,
			TestRatio:       0.2,
			Timeout:         20 * time.Second,
			MinSamples:      10,
			MinPerClass:     3,
		},
		Orchestrator: OrchestratorConfig{
			FastTimeout:       10 * time.Second,
			CNNTimeout:        30 * time.Second,
			PredictWorkers:    4,
			ProgressPerSecond: 10,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			MaxTokens: 800,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
