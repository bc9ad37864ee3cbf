package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mojibox/internal/config"
	"mojibox/internal/grapheme"
	"mojibox/internal/logging"
	"mojibox/internal/segment"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	logger *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		defaults := config.Default()
		return &defaults
	}
	return cfg
}

// startInvocation builds the stderr logger and tags the command context with
// a fresh correlation ID.
func (c *commandContext) startInvocation(cmd *cobra.Command) error {
	logger, err := logging.NewFromConfig(c.configValue(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := logging.WithCorrelationID(parent, logging.NewCorrelationID())
	cmd.SetContext(ctx)
	c.logger = logging.WithContext(ctx, logger).With(logging.String(logging.FieldCommand, cmd.Name()))
	c.logger.Debug("command started",
		logging.String("config_path", c.configPath),
		logging.Bool("config_exists", c.configSeen),
	)
	return nil
}

func (c *commandContext) componentLogger(component string) *slog.Logger {
	return logging.NewComponentLogger(c.logger, component)
}

// segmentOptions resolves the unit kind and engine from flags, falling back to
// the [segment] configuration for flags that were not given.
func (c *commandContext) segmentOptions(cmd *cobra.Command, modeFlag, engineFlag string) (segment.Kind, string, error) {
	cfg := c.configValue()
	mode := cfg.Segment.Mode
	if cmd.Flags().Changed("mode") {
		mode = modeFlag
	}
	engine := cfg.Segment.Engine
	if cmd.Flags().Changed("engine") {
		engine = engineFlag
	}
	kind, err := segment.ParseKind(mode)
	if err != nil {
		return 0, "", err
	}
	if strings.TrimSpace(engine) == "" {
		engine = string(grapheme.DefaultEngine)
	}
	return kind, engine, nil
}

// readInput returns args[index] when present, otherwise all of stdin. "-"
// also selects stdin. A single trailing line terminator is removed from stdin
// unless raw is set.
func readInput(cmd *cobra.Command, args []string, index int, raw bool) ([]byte, error) {
	if index < len(args) && args[index] != "-" {
		return []byte(args[index]), nil
	}
	if err := cmd.Context().Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if !raw {
		data = trimLineEnding(data)
	}
	return data, nil
}

func trimLineEnding(data []byte) []byte {
	n := len(data)
	if n > 0 && data[n-1] == '\n' {
		n--
		if n > 0 && data[n-1] == '\r' {
			n--
		}
	}
	return data[:n]
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
