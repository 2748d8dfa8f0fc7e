// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config holds the glue configuration: YAML file, ORX_* environment
// overrides and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/orx/orx/glue/input"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel       = "ORX_LOG_LEVEL"
	EnvLogFile        = "ORX_LOG_FILE"
	EnvTargetFPS      = "ORX_TARGET_FPS"
	EnvQueueCapacity  = "ORX_INPUT_QUEUE_CAPACITY"
	EnvSurfaceScale   = "ORX_SURFACE_SCALE"
	EnvMaxControllers = "ORX_MAX_CONTROLLERS"
	EnvDebugAddr      = "ORX_DEBUG_ADDR"
	EnvSnapshotPath   = "ORX_SNAPSHOT_PATH"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the glue configuration.
type Config struct {
	LogLevel string `yaml:"logLevel"`
	// LogFile receives internal logs while a toolkit owns the terminal.
	LogFile string `yaml:"logFile"`

	Engine   EngineConfig   `yaml:"engine"`
	Input    InputConfig    `yaml:"input"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Debug    DebugConfig    `yaml:"debug"`
}

// EngineConfig ...
type EngineConfig struct {
	// TargetFPS caps the step rate; 0 steps as fast as possible.
	TargetFPS float64 `yaml:"targetFPS"`
}

// InputConfig ...
type InputConfig struct {
	// QueueCapacity bounds the input FIFO; 0 is unbounded.
	QueueCapacity  int     `yaml:"queueCapacity"`
	SurfaceScale   float32 `yaml:"surfaceScale"`
	MaxControllers int     `yaml:"maxControllers"`
}

// GraphicsConfig ...
type GraphicsConfig struct {
	// SnapshotPath, when set, receives a PNG of the last presented frame
	// when the graphics context is released.
	SnapshotPath string `yaml:"snapshotPath"`
}

// DebugConfig ...
type DebugConfig struct {
	// Addr of the debug HTTP API; empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Engine:   EngineConfig{TargetFPS: 60},
		Input: InputConfig{
			QueueCapacity:  1024,
			SurfaceScale:   1,
			MaxControllers: input.MaxControllers,
		},
	}
}

// Load reads a YAML file over the defaults. Unknown fields are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ORX_* environment variables.
func (c *Config) ApplyEnv() error {
	c.LogLevel = envString(EnvLogLevel, c.LogLevel)
	c.LogFile = envString(EnvLogFile, c.LogFile)
	c.Debug.Addr = envString(EnvDebugAddr, c.Debug.Addr)
	c.Graphics.SnapshotPath = envString(EnvSnapshotPath, c.Graphics.SnapshotPath)

	var err error
	if c.Engine.TargetFPS, err = envFloat(EnvTargetFPS, c.Engine.TargetFPS); err != nil {
		return err
	}
	if c.Input.QueueCapacity, err = envInt(EnvQueueCapacity, c.Input.QueueCapacity); err != nil {
		return err
	}
	if c.Input.MaxControllers, err = envInt(EnvMaxControllers, c.Input.MaxControllers); err != nil {
		return err
	}
	scale, err := envFloat(EnvSurfaceScale, float64(c.Input.SurfaceScale))
	if err != nil {
		return err
	}
	c.Input.SurfaceScale = float32(scale)
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel: %v", ErrInvalid, err)
	}
	if c.Engine.TargetFPS < 0 {
		return fmt.Errorf("%w: engine.targetFPS must not be negative", ErrInvalid)
	}
	if c.Input.QueueCapacity < 0 {
		return fmt.Errorf("%w: input.queueCapacity must not be negative", ErrInvalid)
	}
	if c.Input.SurfaceScale <= 0 {
		return fmt.Errorf("%w: input.surfaceScale must be positive", ErrInvalid)
	}
	if c.Input.MaxControllers < 1 || c.Input.MaxControllers > input.MaxControllers {
		return fmt.Errorf("%w: input.maxControllers must be within 1..%d", ErrInvalid, input.MaxControllers)
	}
	return nil
}

func envString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		log.WithField("key", key).Debug("using environment variable")
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	log.WithField("key", key).Debug("using environment variable")
	return n, nil
}

func envFloat(key string, defaultValue float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	log.WithField("key", key).Debug("using environment variable")
	return f, nil
}
