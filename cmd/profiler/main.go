package main

import (
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // registers pprof handlers
	"os"
	"os/signal"
	"syscall"

	"github.com/INLOpen/splaytree"
	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	app := cli.App{
		Name:    "splayprofiler",
		Usage:   "run a splay tree workload and keep a pprof endpoint alive",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "allocator",
				Usage:   "node allocator: pool or arena",
				Value:   "pool",
				EnvVars: []string{"SPLAYPROFILER_ALLOCATOR"},
			},
			&cli.IntFlag{
				Name:    "items",
				Usage:   "number of items to insert",
				Value:   2_000_000,
				EnvVars: []string{"SPLAYPROFILER_ITEMS"},
			},
			&cli.StringFlag{
				Name:    "pprof-listen",
				Usage:   "address of the pprof HTTP server",
				Value:   "localhost:6060",
				EnvVars: []string{"SPLAYPROFILER_PPROF_LISTEN"},
			},
			&cli.BoolFlag{
				Name:  "exit",
				Usage: "exit once the workload is done instead of waiting for a signal",
			},
		},
		Action: profile,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func profile(cctx *cli.Context) error {
	addr := cctx.String("pprof-listen")
	go func() {
		slog.Info("starting pprof server", "url", fmt.Sprintf("http://%s/debug/pprof/", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			slog.Error("pprof server failed", "err", err)
		}
	}()

	numItems := cctx.Int("items")
	t, err := createTree(numItems, cctx.String("allocator"))
	if err != nil {
		return err
	}

	slog.Info("starting splay tree workload", "items", numItems, "allocator", cctx.String("allocator"))

	// Sequential inserts build a left spine that the lookups below then
	// flatten again, which exercises every rotation case.
	for i := 0; i < numItems; i++ {
		t.Insert(i, i)
	}
	for i := 0; i < numItems; i += 7 {
		t.Find(i)
	}
	slog.Info("workload finished", "len", t.Len())

	if cctx.Bool("exit") {
		return nil
	}

	slog.Info("keeping alive for profiling, press Ctrl+C to exit")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

// createTree builds the tree with the allocator chosen on the command line.
func createTree(numItems int, allocatorType string) (*splaytree.Tree[int, int], error) {
	switch allocatorType {
	case "arena":
		// an int/int node is 40 bytes; leave some slack
		arenaSize := numItems * 64
		slog.Info("using arena allocator", "size_mb", arenaSize/(1024*1024))
		return splaytree.New(splaytree.WithArena[int, int](arenaSize)), nil
	case "pool":
		slog.Info("using pool allocator (default)")
		return splaytree.New[int, int](), nil
	default:
		return nil, fmt.Errorf("unknown allocator %q", allocatorType)
	}
}
