// Command genarena-demo exercises the genarena package end to end: a typed
// Arena[T] of entities and a PolyArena grouping several entity kinds, with
// enough churn to exercise growth and remove-swap release.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/genarena/genarena"
)

var (
	Count    = pflag.IntP("count", "n", 16, "number of entities to insert before the demo churn")
	LogJSON  = pflag.Bool("log-json", false, "use json logs instead of colored console logs")
	LogLevel = pflag.StringP("log-level", "L", "info", "log level: debug, info, warn, error")
	Help     = pflag.BoolP("help", "h", false, "show this help text")
)

func main() {
	pflag.Parse()
	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if *Help {
			return
		}
		os.Exit(2)
	}

	level := parseLevel(*LogLevel)
	if *LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	} else {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: level})))
	}
	genarena.SetLogger(slog.Default())

	if err := run(*Count); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type monster struct {
	Name string
	HP   int
}

type npc struct {
	Name string
}

func run(count int) error {
	slog.Info("building typed arena", "count", count)
	arena, err := genarena.NewArena[monster](genarena.DefaultConfig, 0)
	if err != nil {
		return err
	}
	defer arena.Release()

	refs := make([]genarena.Ref, 0, count)
	for i := 0; i < count; i++ {
		ref, err := arena.Insert(monster{Name: fmt.Sprintf("goblin-%d", i), HP: 10})
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	slog.Info("inserted monsters", "size", arena.Size(), "capacity", arena.Capacity())

	for i := 0; i < len(refs); i += 2 {
		if err := arena.Release(refs[i]); err != nil {
			return err
		}
	}
	slog.Info("released every other monster", "size", arena.Size())

	slog.Info("building polymorphic arena")
	genarena.RegisterType[monster](1)
	genarena.RegisterType[npc](2)
	poly := genarena.NewPolyArena(genarena.DefaultConfig, 3, genarena.WithDynamicDispatch())
	defer poly.Release()
	if err := genarena.RegisterArena[monster](poly, 0); err != nil {
		return err
	}
	if err := genarena.RegisterArena[npc](poly, 0); err != nil {
		return err
	}

	if _, err := genarena.Insert(poly, monster{Name: "dragon", HP: 500}); err != nil {
		return err
	}
	if _, err := genarena.Insert(poly, npc{Name: "blacksmith"}); err != nil {
		return err
	}

	genarena.ForEach[monster](poly, func(m *monster) {
		slog.Info("poly monster", "name", m.Name, "hp", m.HP)
	})
	genarena.ForEach[npc](poly, func(n *npc) {
		slog.Info("poly npc", "name", n.Name)
	})

	return nil
}
