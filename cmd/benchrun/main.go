package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run executes a command, prints its combined output and returns the exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	var ee *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.ExitCode()
	}
	log.Error().Err(err).Str("cmd", name).Msg("running command")
	return 1
}

// Runs the micro benchmarks in bench/, then perft and search throughput.
// Usage: go run ./cmd/benchrun
func main() {
	maxPerft := flag.Int("perft-depth", 5, "deepest start position perft")
	searchDepth := flag.Int("search-depth", 8, "searchbench depth")
	benchtime := flag.String("benchtime", "1s", "go test -benchtime")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for d := 3; d <= *maxPerft; d++ {
		run("go", "run", "./cmd/perft", "-depth", strconv.Itoa(d), "-label", "Initial")
	}
	run("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete", "-verify")

	fmt.Println("\nSearch:")
	run("go", "run", "./cmd/searchbench", "-depth", strconv.Itoa(*searchDepth))
	run("go", "run", "./cmd/searchbench", "-fen", kiwipete, "-depth", strconv.Itoa(*searchDepth))
}
