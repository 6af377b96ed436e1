package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MusicDir) == "" {
		return errors.New("paths.music_dir must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extension) < 2 || !strings.HasPrefix(c.Scan.Extension, ".") {
		return fmt.Errorf("scan.extension must name a file extension, got %q", c.Scan.Extension)
	}
	if c.Scan.HashWorkers < 0 {
		return errors.New("scan.hash_workers must not be negative")
	}
	if c.Scan.SimilarityThreshold < 0 || c.Scan.SimilarityThreshold > 1 {
		return errors.New("scan.similarity_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
