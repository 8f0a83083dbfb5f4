// Command ca-sweep runs one automaton under a grid of thread and chunk
// counts, reports throughput for each, and fails when any combination
// produces a different final generation.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"par-ca/internal/app"
	"par-ca/internal/core"
	_ "par-ca/internal/sims/briansbrain"
	_ "par-ca/internal/sims/cyclic"
	_ "par-ca/internal/sims/life"

	"golang.org/x/sync/semaphore"
)

type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	var out []int
	for _, field := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", field)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

type scenario struct {
	threads, chunks int
}

type scenarioResult struct {
	scenario
	elapsed time.Duration
	gens    int
	digest  uint64
	err     error
}

func (r scenarioResult) gensPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.gens) / r.elapsed.Seconds()
}

func main() {
	base := app.NewConfig()
	base.Bind(flag.CommandLine)
	size := flag.Int("size", 128, "grid edge length in cells")
	gens := flag.Int("gens", 200, "generations per scenario")
	workers := flag.Int("workers", 2, "scenarios run concurrently")
	threads := intList{1, 2, 4, base.Threads}
	chunks := intList{1, 4, 16, 64}
	flag.Var(&threads, "thread-list", "comma-separated worker counts to sweep")
	flag.Var(&chunks, "chunk-list", "comma-separated chunk counts to sweep")
	flag.Parse()

	if base.Seed == 0 {
		// Every scenario must sample the same grid.
		base.Seed = core.TimeSeed()
	}
	base.CellSize = 1

	sets := scenarios(threads, chunks, *size**size)
	fmt.Printf("Sweeping %d scenarios of %s on %dx%d (%d concurrent, %d generations, seed %d)\n",
		len(sets), base.Sim, *size, *size, *workers, *gens, base.Seed)

	all, err := sweep(context.Background(), base, float64(*size), *gens, *workers, sets)
	if err != nil {
		log.Fatal(err)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].gensPerSec() > all[j].gensPerSec() })
	for i, res := range all {
		fmt.Printf("%2d) threads=%-3d chunks=%-4d %8.1f gen/s  elapsed=%s digest=%016x\n",
			i+1, res.threads, res.chunks, res.gensPerSec(), res.elapsed.Round(time.Millisecond), res.digest)
	}

	if mismatched := mismatches(all); len(mismatched) > 0 {
		for _, res := range mismatched {
			fmt.Fprintf(os.Stderr, "threads=%d chunks=%d diverged: digest %016x\n", res.threads, res.chunks, res.digest)
		}
		os.Exit(1)
	}
	fmt.Println("\nAll scenarios produced the same final generation.")
}

// scenarios crosses the thread and chunk lists, skipping chunk counts the
// grid cannot hold.
func scenarios(threads, chunks []int, total int) []scenario {
	var out []scenario
	for _, t := range threads {
		for _, c := range chunks {
			if c > total {
				continue
			}
			out = append(out, scenario{threads: t, chunks: c})
		}
	}
	return out
}

// sweep runs every scenario with at most workers in flight and returns their
// results. The first failed scenario aborts the sweep.
func sweep(ctx context.Context, base *app.Config, size float64, gens, workers int, sets []scenario) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	results := make(chan scenarioResult, len(sets))
	var wg sync.WaitGroup

	for _, sc := range sets {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(sc scenario) {
			defer wg.Done()
			defer sem.Release(1)
			results <- runScenario(base, size, gens, sc)
		}(sc)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []scenarioResult
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("threads=%d chunks=%d: %w", res.threads, res.chunks, res.err)
			}
			continue
		}
		all = append(all, res)
	}
	return all, firstErr
}

func runScenario(base *app.Config, size float64, gens int, sc scenario) scenarioResult {
	cfg := *base
	cfg.Threads = sc.threads
	cfg.Chunks = sc.chunks

	res := scenarioResult{scenario: sc}
	sim, err := cfg.Build(size, size)
	if err != nil {
		res.err = err
		return res
	}

	start := time.Now()
	for i := 0; i < gens; i++ {
		if err := sim.Advance(); err != nil {
			res.err = err
			break
		}
		res.gens++
	}
	res.elapsed = time.Since(start)
	if err := sim.Close(); err != nil && res.err == nil {
		res.err = err
	}
	res.digest = digest(sim)
	return res
}

// digest hashes the displayed colors of every cell in index order.
func digest(sim core.Sim) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for i := 0; i < sim.Grid().Total(); i++ {
		c := sim.Color(i)
		buf[0], buf[1], buf[2], buf[3] = c.R, c.G, c.B, c.A
		h.Write(buf[:])
	}
	var gen [8]byte
	binary.LittleEndian.PutUint64(gen[:], sim.Generation())
	h.Write(gen[:])
	return h.Sum64()
}

// mismatches returns the results whose digest differs from the most common
// one.
func mismatches(all []scenarioResult) []scenarioResult {
	counts := make(map[uint64]int)
	var majority uint64
	for _, res := range all {
		counts[res.digest]++
		if counts[res.digest] > counts[majority] {
			majority = res.digest
		}
	}
	var out []scenarioResult
	for _, res := range all {
		if res.digest != majority {
			out = append(out, res)
		}
	}
	return out
}
