package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
	"github.com/baditaflorin/go_doc_similarity/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
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
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		// stdout carries reports, so console logs go to stderr.
		if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" {
			cfg.Logging.Output = "stderr"
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// withApp builds an App from the loaded configuration, runs fn and closes it.
func (c *commandContext) withApp(mutate func(*config.Config), fn func(*app.App) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	local := *cfg
	if mutate != nil {
		mutate(&local)
	}
	a, err := app.New(&local)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
