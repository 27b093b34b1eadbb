/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package exprgen

import (
	"io"

	"github.com/rulego/exprgen/config"
	"github.com/rulego/exprgen/logger"
)

// Option modifies the Generator's default behavior.
type Option func(*Generator)

// WithNullCheck toggles null-propagation code generation. When off, no
// nullity tracking is emitted and callers guarantee null values never
// occur in the inputs.
//
// Example:
//
//	gen := exprgen.New(exprgen.WithNullCheck(false))
func WithNullCheck(enabled bool) Option {
	return func(g *Generator) {
		g.nullCheck = enabled
	}
}

// WithTimeZone binds all generated date/time formatters to the named
// zone. The default is UTC. An empty name keeps the default.
//
// Example:
//
//	gen := exprgen.New(exprgen.WithTimeZone("America/New_York"))
func WithTimeZone(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.timeZone = name
		}
	}
}

// WithLogger sets a custom logger for the Generator and its sessions.
//
// Example:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	gen := exprgen.New(exprgen.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithLogLevel sets the log level on the Generator's current logger.
//
// Example:
//
//	// dump every tree and generated fragment
//	gen := exprgen.New(exprgen.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(g *Generator) {
		g.log.SetLevel(level)
	}
}

// WithLogOutput directs logs to output at the given level.
//
// Example:
//
//	logFile, _ := os.OpenFile("exprgen.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	gen := exprgen.New(exprgen.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(g *Generator) {
		g.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog disables all log output.
//
// Example:
//
//	gen := exprgen.New(exprgen.WithDiscardLog())
func WithDiscardLog() Option {
	return func(g *Generator) {
		g.log = logger.NewDiscardLogger()
	}
}

// WithConfig applies a loaded configuration file.
//
// Example:
//
//	cfg, err := config.Load("exprgen.yaml")
//	gen := exprgen.New(exprgen.WithConfig(cfg))
func WithConfig(cfg *config.Config) Option {
	return func(g *Generator) {
		if cfg == nil {
			return
		}
		g.nullCheck = cfg.NullCheck
		if cfg.TimeZone != "" {
			g.timeZone = cfg.TimeZone
		}
		g.log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	}
}
