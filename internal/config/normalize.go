package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	if err := c.normalizeFetch(); err != nil {
		return err
	}
	c.normalizeMPD()
	if err := c.normalizeRelocate(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MusicDir, err = expandPath(c.Paths.MusicDir); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Extension = strings.ToLower(strings.TrimSpace(c.Scan.Extension))
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		c.Scan.Extension = "." + c.Scan.Extension
	}
	if c.Scan.SimilarityThreshold == 0 {
		c.Scan.SimilarityThreshold = defaultSimilarityThreshold
	}
}

func (c *Config) normalizeFetch() error {
	c.Fetch.Binary = strings.TrimSpace(c.Fetch.Binary)
	if c.Fetch.Binary == "" {
		c.Fetch.Binary = defaultFetchBinary
	}
	c.Fetch.AudioFormat = strings.TrimSpace(c.Fetch.AudioFormat)
	if c.Fetch.AudioFormat == "" {
		c.Fetch.AudioFormat = defaultFetchAudioFormat
	}
	c.Fetch.AudioQuality = strings.TrimSpace(c.Fetch.AudioQuality)
	if c.Fetch.AudioQuality == "" {
		c.Fetch.AudioQuality = defaultFetchAudioQuality
	}
	c.Fetch.ListFile = strings.TrimSpace(c.Fetch.ListFile)
	if c.Fetch.ListFile != "" && strings.ContainsAny(c.Fetch.ListFile, "/~") {
		expanded, err := expandPath(c.Fetch.ListFile)
		if err != nil {
			return fmt.Errorf("fetch.list_file: %w", err)
		}
		c.Fetch.ListFile = expanded
	}
	return nil
}

func (c *Config) normalizeMPD() {
	c.MPD.Binary = strings.TrimSpace(c.MPD.Binary)
	if c.MPD.Binary == "" {
		c.MPD.Binary = defaultMPDBinary
	}
}

func (c *Config) normalizeRelocate() error {
	c.Relocate.TargetDir = strings.TrimSpace(c.Relocate.TargetDir)
	if c.Relocate.TargetDir == "" {
		return nil
	}
	expanded, err := expandPath(c.Relocate.TargetDir)
	if err != nil {
		return fmt.Errorf("relocate.target_dir: %w", err)
	}
	c.Relocate.TargetDir = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
