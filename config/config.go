// Package config loads the settings of the example programs from the
// environment and an optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/knntune/archive"
	"github.com/hupe1980/knntune/blobstore"
	"github.com/hupe1980/knntune/blobstore/minio"
	"github.com/hupe1980/knntune/blobstore/s3"
	"github.com/hupe1980/knntune/distance"
	"github.com/hupe1980/knntune/report"
	"github.com/hupe1980/knntune/resource"
	"github.com/joho/godotenv"
)

// Archive backends.
const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendMinIO  = "minio"
	BackendS3     = "s3"
)

// Config holds the experiment and archive settings.
type Config struct {
	Experiment  string
	Seed        int64
	K           int
	Folds       int
	Candidates  []int
	Metric      distance.Metric
	Split       []float64
	Tolerance   float64
	Workers     int
	IOLimit     int
	Compression report.Compression

	// Backend is one of memory, local, minio or s3.
	Backend string
	// LocalDir is the root of the local backend ("local:<dir>").
	LocalDir string
	Bucket   string
	Prefix   string
	Region   string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOSecure    bool

	// DDBTable enables the DynamoDB run registry when set.
	DDBTable string
}

// Load reads the configuration. Files default to ".env"; missing files are
// ignored and variables already set in the environment take precedence.
func Load(files ...string) (*Config, error) {
	for _, f := range defaultFiles(files) {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	p := &parser{}
	cfg := &Config{
		Experiment:     getEnv("KNNTUNE_EXPERIMENT", "default"),
		Seed:           p.getInt64("KNNTUNE_SEED", 42),
		K:              p.getInt("KNNTUNE_K", 5),
		Folds:          p.getInt("KNNTUNE_FOLDS", 5),
		Candidates:     p.getInts("KNNTUNE_CANDIDATES", []int{1, 3, 5, 7, 9}),
		Split:          p.getFloats("KNNTUNE_SPLIT", []float64{0.75, 0.25}),
		Tolerance:      p.getFloat("KNNTUNE_TOLERANCE", 0),
		Workers:        p.getInt("KNNTUNE_WORKERS", 0),
		IOLimit:        p.getInt("KNNTUNE_IO_LIMIT", 0),
		Bucket:         getEnv("KNNTUNE_BUCKET", ""),
		Prefix:         getEnv("KNNTUNE_PREFIX", "reports/"),
		Region:         getEnv("KNNTUNE_REGION", ""),
		MinIOEndpoint:  getEnv("KNNTUNE_MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("KNNTUNE_MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("KNNTUNE_MINIO_SECRET_KEY", ""),
		MinIOSecure:    p.getBool("KNNTUNE_MINIO_SECURE", false),
		DDBTable:       getEnv("KNNTUNE_DDB_TABLE", ""),
	}

	cfg.Metric = p.getMetric("KNNTUNE_METRIC", distance.MetricEuclidean)
	cfg.Compression = p.getCompression("KNNTUNE_COMPRESSION")
	cfg.Backend, cfg.LocalDir = parseBackend(getEnv("KNNTUNE_ARCHIVE", BackendMemory))

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultFiles(files []string) []string {
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

func parseBackend(v string) (string, string) {
	if dir, ok := strings.CutPrefix(v, BackendLocal+":"); ok {
		return BackendLocal, dir
	}
	return v, ""
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Experiment == "" || strings.Contains(c.Experiment, "/") {
		return fmt.Errorf("config: KNNTUNE_EXPERIMENT %q must be a non-empty name without '/'", c.Experiment)
	}
	if c.K < 1 {
		return fmt.Errorf("config: KNNTUNE_K must be at least 1, got %d", c.K)
	}
	if c.Folds < 2 {
		return fmt.Errorf("config: KNNTUNE_FOLDS must be at least 2, got %d", c.Folds)
	}
	if len(c.Candidates) == 0 {
		return errors.New("config: KNNTUNE_CANDIDATES is required")
	}
	if len(c.Split) < 2 {
		return fmt.Errorf("config: KNNTUNE_SPLIT needs at least two proportions, got %d", len(c.Split))
	}
	sum := 0.0
	for _, v := range c.Split {
		if v <= 0 {
			return fmt.Errorf("config: KNNTUNE_SPLIT proportions must be positive, got %v", v)
		}
		sum += v
	}
	if sum < 1-1e-9 || sum > 1+1e-9 {
		return fmt.Errorf("config: KNNTUNE_SPLIT must sum to 1, got %v", sum)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("config: KNNTUNE_TOLERANCE must not be negative, got %v", c.Tolerance)
	}
	if c.IOLimit < 0 {
		return fmt.Errorf("config: KNNTUNE_IO_LIMIT must not be negative, got %d", c.IOLimit)
	}

	switch c.Backend {
	case BackendMemory:
	case BackendLocal:
		if c.LocalDir == "" {
			return errors.New("config: KNNTUNE_ARCHIVE=local:<dir> needs a directory")
		}
	case BackendMinIO:
		if c.Bucket == "" {
			return errors.New("config: KNNTUNE_BUCKET is required for minio")
		}
		if c.MinIOAccessKey == "" || c.MinIOSecretKey == "" {
			return errors.New("config: KNNTUNE_MINIO_ACCESS_KEY and KNNTUNE_MINIO_SECRET_KEY are required for minio")
		}
	case BackendS3:
		if c.Bucket == "" {
			return errors.New("config: KNNTUNE_BUCKET is required for s3")
		}
	default:
		return fmt.Errorf("config: unknown KNNTUNE_ARCHIVE backend %q", c.Backend)
	}
	return nil
}

// Controller returns a resource controller for the configured limits.
func (c *Config) Controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxWorkers:         int64(c.Workers),
		IOLimitBytesPerSec: int64(c.IOLimit),
	})
}

// Store opens the configured blob store.
func (c *Config) Store(ctx context.Context) (blobstore.BlobStore, error) {
	switch c.Backend {
	case BackendLocal:
		return blobstore.NewLocalStore(c.LocalDir), nil
	case BackendMinIO:
		client, err := minio.Dial(c.MinIOEndpoint, c.MinIOAccessKey, c.MinIOSecretKey, c.MinIOSecure)
		if err != nil {
			return nil, err
		}
		store := minio.NewStore(client, c.Bucket, c.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case BackendS3:
		return s3.New(ctx, c.Bucket, s3.WithPrefix(c.Prefix), s3.WithRegion(c.Region))
	default:
		return blobstore.NewMemoryStore(), nil
	}
}

// Archive opens the configured store and registry.
func (c *Config) Archive(ctx context.Context, rc *resource.Controller) (*archive.Archive, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}

	opts := []archive.Option{
		archive.WithCompression(c.Compression),
		archive.WithResourceController(rc),
	}
	if c.DDBTable != "" {
		reg, err := archive.DialDynamo(ctx, c.DDBTable, c.Region)
		if err != nil {
			return nil, err
		}
		opts = append(opts, archive.WithRegistry(reg))
	}
	return archive.New(store, opts...), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser keeps the first conversion error.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("config: %s=%q: %w", key, value, err)
	}
}

func (p *parser) getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) getInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) getInts(key string, def []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			p.fail(key, v, err)
			return def
		}
		out = append(out, n)
	}
	return out
}

func (p *parser) getFloats(key string, def []float64) []float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []float64
	for _, part := range strings.Split(v, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			p.fail(key, v, err)
			return def
		}
		out = append(out, f)
	}
	return out
}

func (p *parser) getMetric(key string, def distance.Metric) distance.Metric {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	m, err := distance.ParseMetric(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return m
}

func (p *parser) getCompression(key string) report.Compression {
	v := os.Getenv(key)
	c, err := report.ParseCompression(v)
	if err != nil {
		p.fail(key, v, err)
		return report.CompressionZstd
	}
	return c
}
