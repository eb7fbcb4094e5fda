package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"photofind/internal/config"
	"photofind/internal/library"
	"photofind/internal/logging"
	"photofind/internal/photodb"
)

type commandContext struct {
	configFlag  *string
	libraryFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, libraryFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		libraryFlag: libraryFlag,
	}
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{})
		}
		c.logger = logger
	})
	return c.logger
}

// defaultLimit returns the configured result cap for commands run without -n.
func (c *commandContext) defaultLimit() int {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return 20
	}
	return cfg.Output.DefaultLimit
}

// databasePath resolves the store location: explicit flag, then config, then
// the well-known candidate scan.
func (c *commandContext) databasePath() (string, error) {
	if c.libraryFlag != nil {
		if flag := strings.TrimSpace(*c.libraryFlag); flag != "" {
			return config.ExpandPath(flag)
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Library.DatabasePath != "" {
		return cfg.Library.DatabasePath, nil
	}
	if path, ok := library.Find(); ok {
		return path, nil
	}
	return "", notLocatedError()
}

// withStore opens the library read-only for the duration of one command and
// closes it on every exit path.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(ctx context.Context, store *photodb.Store) error) error {
	dbPath, err := c.databasePath()
	if err != nil {
		return err
	}

	store, err := photodb.Open(cmd.Context(), dbPath, photodb.Options{Logger: c.log()})
	if err != nil {
		return friendlyError(err)
	}
	defer store.Close()

	return friendlyError(fn(cmd.Context(), store))
}

func notLocatedError() error {
	return fmt.Errorf("%w\n\nSearched locations:\n"+
		"  ~/Pictures/Photos Library.photoslibrary/database/Photos.sqlite\n"+
		"  ~/Pictures/*.photoslibrary/database/Photos.sqlite\n"+
		"  ~/Library/Containers/com.apple.Photos/.../Photos.sqlite\n\n"+
		"Possible causes:\n"+
		"  - The library is in a non-standard location (use --library or library.database_path)\n"+
		"  - Full Disk Access is required (System Settings > Privacy & Security > Full Disk Access)",
		photodb.ErrNotLocated)
}

// friendlyError appends remediation guidance to the conditions a user can
// act on.
func friendlyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, photodb.ErrLocked):
		return fmt.Errorf("%w\nThe Photos database is locked. Close Photos.app and try again.", err)
	case errors.Is(err, photodb.ErrSchemaMismatch):
		return fmt.Errorf("%w\nThis may indicate an incompatible Photos library version.", err)
	case errors.Is(err, photodb.ErrNotLocated):
		return fmt.Errorf("%w\nFull Disk Access may be required. Grant it in System Settings > Privacy & Security > Full Disk Access.", err)
	default:
		return err
	}
}
