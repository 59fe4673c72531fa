package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	return c.validateHistory()
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must be set")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		return errors.New("server timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}

func (c *Config) validateEngine() error {
	if c.Engine.MaxTableCells < 0 {
		return errors.New("engine.max_table_cells must not be negative")
	}
	if c.Engine.PassageMinTokens < 0 {
		return errors.New("engine.passage_min_tokens must not be negative")
	}
	if c.Engine.MaxDocumentBytes < 0 {
		return errors.New("engine.max_document_bytes must not be negative")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	if c.History.Limit <= 0 {
		return errors.New("history.limit must be positive")
	}
	return nil
}
