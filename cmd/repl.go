package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/tbuckley/quanta/internal/cachemanager"
	"github.com/tbuckley/quanta/internal/log"
	"github.com/tbuckley/quanta/internal/unit"
	"github.com/tbuckley/quanta/internal/watcher"
)

var replCommands = []string{
	"convert", "decompose", "compose", "type", "list", "reload", "help", "exit",
}

// replHelp doubles as the cobra long help and the shell's 'help' output.
const replHelp = `An interactive shell for unit arithmetic and conversion with line
editing, history, and tab completion over the catalog.

Inside the shell:
  100 km/h to m/s              convert a value
  20 deg_C to K using temperature
  decompose J                  reduce to irreducible bases
  compose kg*m^2/s^2           find named spellings
  type W/m^2                   show the physical type
  list <name>                  show a unit's names and definition
  reload                       reload user catalog files
  exit                         leave the shell

User catalog files named in the configuration are watched; edits are
picked up automatically.`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive unit shell",
	Long:  replHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return runREPL(e)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// convRequest carries one conversion through the read-through cache. The
// cache key identifies (from, to, equivalencies); the converter is reused
// for subsequent values.
type convRequest struct {
	from unit.Unit
	to   unit.Unit
	eqs  []unit.Equivalency
}

func runREPL(e *env) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return completeREPL(e, l)
	})

	historyFile := filepath.Join(os.TempDir(), ".quanta_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	converterCache := cachemanager.NewReadThroughCache[string, unit.Converter, convRequest](
		cachemanager.NewInMemoryCacheManager[string, unit.Converter](
			"converter", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		func(ctx context.Context, req convRequest) (unit.Converter, error) {
			return unit.GetConverter(req.from, req.to, req.eqs...)
		},
		false,
	)

	// Watch user catalog files; a pending reload is applied before the
	// next evaluation rather than mid-prompt.
	var reloadPending atomic.Bool
	if len(cfg.CatalogPaths) > 0 {
		w, err := watcher.New(watcher.DefaultConfig(cfg.CatalogPaths...))
		if err == nil {
			if changes, err := w.Start(); err == nil {
				defer func() { _ = w.Stop() }()
				go func() {
					for range changes {
						reloadPending.Store(true)
						log.Info(log.CatWatcher, "catalog change detected")
					}
				}()
			}
		}
	}

	fmt.Printf("quanta %s - type 'help' for commands, 'exit' to leave\n", version)

	for {
		input, err := line.Prompt("quanta> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if reloadPending.Swap(false) {
			if err := reloadEnv(e, converterCache); err != nil {
				fmt.Println("reload failed:", err)
			} else {
				fmt.Println("(catalog reloaded)")
			}
		}

		if done := evalREPL(e, converterCache, input); done {
			return nil
		}
	}
}

func reloadEnv(e *env, cache *cachemanager.ReadThroughCache[string, unit.Converter, convRequest]) error {
	if err := e.loadUserCatalogs(); err != nil {
		return err
	}
	e.resolver = e.newResolver()
	return cache.Flush(context.Background())
}

// evalREPL runs one shell line; it reports true when the shell should exit.
func evalREPL(e *env, cache *cachemanager.ReadThroughCache[string, unit.Converter, convRequest], input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit":
		return true

	case "help":
		fmt.Println(replHelp)

	case "reload":
		if err := reloadEnv(e, cache); err != nil {
			fmt.Println("reload failed:", err)
		} else {
			fmt.Println("ok")
		}

	case "decompose":
		u, err := e.resolver.Parse(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		d, err := unit.Decompose(u)
		if err != nil {
			fmt.Println(err)
			return false
		}
		fmt.Printf("%s = %s\n", u.String(), d.String())

	case "compose":
		u, err := e.resolver.Parse(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		results, err := unit.Compose(u, unit.WithContext(e.registry))
		if err != nil {
			fmt.Println(err)
			return false
		}
		for _, r := range results {
			fmt.Println(r.String())
		}

	case "type":
		u, err := e.resolver.Parse(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		fmt.Println(unit.PhysicalType(u))

	case "list":
		u, ok := e.registry.Current().Lookup(rest)
		if !ok {
			fmt.Printf("no unit named %q\n", rest)
			return false
		}
		fmt.Println(strings.Join(u.Names(), ", "))
		if n, isNamed := u.(*unit.Named); isNamed {
			fmt.Println("=", n.Represents().String())
		}
		if t := unit.PhysicalType(u); t != "unknown" {
			fmt.Println("physical type:", t)
		}

	default:
		evalConversion(e, cache, input)
	}
	return false
}

// evalConversion handles "<value> <from> to <to> [using eq,...]" lines.
func evalConversion(e *env, cache *cachemanager.ReadThroughCache[string, unit.Converter, convRequest], input string) {
	var eqNames []string
	if idx := strings.LastIndex(input, " using "); idx >= 0 {
		eqNames = strings.Split(input[idx+len(" using "):], ",")
		input = input[:idx]
	}

	left, right, found := cutLast(input, " to ")
	if !found {
		fmt.Println("unrecognized input; type 'help' for commands")
		return
	}

	valueStr, fromExpr, found := strings.Cut(strings.TrimSpace(left), " ")
	if !found {
		fmt.Println("expected: <value> <from> to <to>")
		return
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		fmt.Printf("invalid value %q\n", valueStr)
		return
	}

	from, err := e.resolver.Parse(strings.TrimSpace(fromExpr))
	if err != nil {
		fmt.Println(err)
		return
	}
	to, err := e.resolver.Parse(strings.TrimSpace(right))
	if err != nil {
		fmt.Println(err)
		return
	}
	eqs, err := equivalenciesByName(eqNames)
	if err != nil {
		fmt.Println(err)
		return
	}

	key := from.String() + "\x00" + to.String() + "\x00" + strings.Join(eqNames, ",")
	conv, err := cache.Get(context.Background(), key,
		convRequest{from: from, to: to, eqs: eqs}, 10*time.Minute)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%v %s = %v %s\n", value, from.String(), conv(value), to.String())
}

// cutLast splits around the final occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// completeREPL completes leading command words and trailing unit names.
func completeREPL(e *env, l string) []string {
	var out []string
	if !strings.Contains(l, " ") {
		for _, c := range replCommands {
			if strings.HasPrefix(c, l) {
				out = append(out, c)
			}
		}
	}
	idx := strings.LastIndexAny(l, " */^(")
	head, tail := l[:idx+1], l[idx+1:]
	if tail == "" {
		return out
	}
	for _, n := range e.registry.Current().Names() {
		if strings.HasPrefix(n, tail) {
			out = append(out, head+n)
		}
	}
	return out
}
