package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/INLOpen/splaytree"
	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "splaybench",
		Usage:   "lightweight insert/lookup/erase microbench over allocator configs",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "items",
				Usage:   "number of keys to insert",
				Value:   200_000,
				EnvVars: []string{"SPLAYBENCH_ITEMS"},
			},
			&cli.IntFlag{
				Name:    "lookups",
				Usage:   "number of Find calls after the inserts",
				Value:   1_000_000,
				EnvVars: []string{"SPLAYBENCH_LOOKUPS"},
			},
			&cli.StringFlag{
				Name:    "pattern",
				Usage:   "lookup pattern: uniform, skewed or sequential",
				Value:   "skewed",
				EnvVars: []string{"SPLAYBENCH_PATTERN"},
			},
			&cli.Float64Flag{
				Name:    "hot-fraction",
				Usage:   "share of keys receiving 90% of lookups in the skewed pattern",
				Value:   0.01,
				EnvVars: []string{"SPLAYBENCH_HOT_FRACTION"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				EnvVars: []string{"DEBUG"},
			},
		},
		Action: bench,
	}
	return app.Run(args)
}

type config struct {
	name string
	opts []splaytree.Option[int, int]
}

var configs = []config{
	{"Pool", nil},
	{"Arena-default-1MB", []splaytree.Option[int, int]{splaytree.WithArena[int, int](1 << 20)}},
	{"Arena-factor-2-1KB", []splaytree.Option[int, int]{splaytree.WithArena[int, int](1 << 10), splaytree.WithArenaGrowthFactor[int, int](2.0)}},
	{"Arena-bytes-64KB-1KB", []splaytree.Option[int, int]{splaytree.WithArena[int, int](1 << 10), splaytree.WithArenaGrowthBytes[int, int](64 * 1024)}},
	{"Arena-threshold-0.9-factor-2-1KB", []splaytree.Option[int, int]{splaytree.WithArena[int, int](1 << 10), splaytree.WithArenaGrowthFactor[int, int](2.0), splaytree.WithArenaGrowthThreshold[int, int](0.9)}},
}

func bench(cctx *cli.Context) error {
	logLevel := slog.LevelInfo
	if cctx.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	n := cctx.Int("items")
	lookups := cctx.Int("lookups")
	if n <= 0 || lookups < 0 {
		return fmt.Errorf("invalid workload: items=%d lookups=%d", n, lookups)
	}

	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	keys := make([]int, n)
	for i := range keys {
		keys[i] = r.Int()
	}
	probes, err := lookupKeys(r, keys, lookups, cctx.String("pattern"), cctx.Float64("hot-fraction"))
	if err != nil {
		return err
	}

	slog.Info("running splay tree microbench", "items", n, "lookups", lookups, "pattern", cctx.String("pattern"))

	for _, cfg := range configs {
		runtime.GC()
		time.Sleep(50 * time.Millisecond)

		t := splaytree.New[int, int](cfg.opts...)

		var msBefore, msAfter runtime.MemStats
		runtime.ReadMemStats(&msBefore)

		start := time.Now()
		for i, k := range keys {
			t.Insert(k, i)
		}
		insertDur := time.Since(start)

		start = time.Now()
		hits := 0
		for _, k := range probes {
			if !t.Find(k).IsEnd() {
				hits++
			}
		}
		findDur := time.Since(start)

		start = time.Now()
		for _, k := range keys[:n/2] {
			t.Erase(k)
		}
		eraseDur := time.Since(start)

		runtime.ReadMemStats(&msAfter)

		slog.Info("config done",
			"config", cfg.name,
			"insert_ns_op", perOp(insertDur, n),
			"find_ns_op", perOp(findDur, len(probes)),
			"erase_ns_op", perOp(eraseDur, n/2),
			"hits", hits,
			"alloc_bytes", int64(msAfter.TotalAlloc)-int64(msBefore.TotalAlloc),
			"len", t.Len(),
		)
		if k, _, ok := t.Min(); ok {
			slog.Debug("tree state", "config", cfg.name, "min", k)
		}
	}
	return nil
}

// lookupKeys builds the probe sequence. The skewed pattern sends 90% of the
// probes to a small hot set, which is where splaying pays off.
func lookupKeys(r *rand.Rand, keys []int, count int, pattern string, hot float64) ([]int, error) {
	probes := make([]int, count)
	switch pattern {
	case "uniform":
		for i := range probes {
			probes[i] = keys[r.IntN(len(keys))]
		}
	case "sequential":
		for i := range probes {
			probes[i] = keys[i%len(keys)]
		}
	case "skewed":
		if hot <= 0 || hot > 1 {
			return nil, fmt.Errorf("hot-fraction must be in (0, 1], got %v", hot)
		}
		hotSet := max(int(float64(len(keys))*hot), 1)
		for i := range probes {
			if r.IntN(10) < 9 {
				probes[i] = keys[r.IntN(hotSet)]
			} else {
				probes[i] = keys[r.IntN(len(keys))]
			}
		}
	default:
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
	return probes, nil
}

func perOp(d time.Duration, ops int) float64 {
	if ops == 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / float64(ops)
}
