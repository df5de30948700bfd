package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tbuckley/quanta/internal/catalog"
	"github.com/tbuckley/quanta/internal/catalogfile"
	"github.com/tbuckley/quanta/internal/config"
	"github.com/tbuckley/quanta/internal/log"
	"github.com/tbuckley/quanta/internal/parse"
	"github.com/tbuckley/quanta/internal/tracing"
	"github.com/tbuckley/quanta/internal/unit"
)

// env is the shared command environment: a registry context with the
// built-in catalog plus any user catalog files enabled on top, a resolver
// honoring the configured policy, and the trace provider.
type env struct {
	registry *unit.Context
	resolver *parse.Resolver
	provider *tracing.Provider
	scope    *unit.Scope
	cleanups []func()
}

func newEnv() (*env, error) {
	e := &env{}

	if cfg.Debug {
		if err := os.MkdirAll(".quanta", 0o750); err == nil {
			if closeLog, err := log.Init(filepath.Join(".quanta", "debug.log")); err == nil {
				e.cleanups = append(e.cleanups, closeLog)
			}
		}
	}

	tcfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if tcfg.Enabled && tcfg.Exporter == "file" && tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	e.provider = provider
	e.cleanups = append(e.cleanups, func() {
		_ = provider.Shutdown(context.Background())
	})

	registry, err := catalog.NewContext()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	e.registry = registry

	if len(cfg.CatalogPaths) > 0 {
		if err := e.loadUserCatalogs(); err != nil {
			return nil, err
		}
	}

	e.resolver = e.newResolver()
	return e, nil
}

// loadUserCatalogs enables the configured catalog files on a new registry
// level, replacing any previously enabled level.
func (e *env) loadUserCatalogs() error {
	if e.scope != nil {
		_ = e.scope.Exit()
		e.scope = nil
	}

	units, err := catalogfile.LoadAll(cfg.CatalogPaths, e.registry.Current())
	if err != nil {
		return fmt.Errorf("loading user catalogs: %w", err)
	}
	scope, err := e.registry.Enable(units...)
	if err != nil {
		return fmt.Errorf("enabling user catalogs: %w", err)
	}
	e.scope = scope
	log.Info(log.CatRegistry, "user catalogs enabled",
		"paths", strings.Join(cfg.CatalogPaths, ","), "units", len(units))
	return nil
}

func (e *env) newResolver() *parse.Resolver {
	policy, err := parse.ParsePolicy(cfg.Strict)
	if err != nil {
		policy = parse.Strict
	}
	return parse.New(e.registry.Current(),
		parse.WithPolicy(policy),
		parse.WithWarnFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, "warning:", msg)
			log.Warn(log.CatUnit, msg)
		}))
}

func (e *env) close() {
	if e.scope != nil {
		_ = e.scope.Exit()
	}
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i]()
	}
}

// equivalenciesByName maps --equivalency flag values to transform sets.
func equivalenciesByName(names []string) ([]unit.Equivalency, error) {
	var out []unit.Equivalency
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "temperature":
			out = append(out, catalog.Temperature()...)
		case "spectral":
			out = append(out, catalog.Spectral()...)
		case "parallax":
			out = append(out, catalog.Parallax()...)
		default:
			return nil, fmt.Errorf("unknown equivalency %q (have: temperature, spectral, parallax)", n)
		}
	}
	return out, nil
}

// systemUnits maps a --system flag value to its candidate catalog.
func systemUnits(name string) ([]unit.Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "si", "":
		return catalog.SIUnits(), nil
	case "cgs":
		return catalog.CGSUnits(), nil
	default:
		return nil, fmt.Errorf("unknown unit system %q (have: si, cgs)", name)
	}
}
