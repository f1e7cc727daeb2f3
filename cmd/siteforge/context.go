package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"siteforge/internal/config"
	"siteforge/internal/logging"
	"siteforge/internal/manifest"
	"siteforge/internal/studio"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// loadSession builds a session and replays the manifest into it.
func (c *commandContext) loadSession(manifestPath string) (*studio.Session, *manifest.Manifest, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	session := studio.NewSession(logger)
	if err := m.Apply(session); err != nil {
		return nil, nil, err
	}
	return session, m, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
