// Command trieroot computes a Merkle Patricia Trie root from a JSON file
// of key/value pairs.
//
// Usage:
//
//	trieroot [flags] pairs.json
//
// The input file holds a JSON array of hex-encoded pairs:
//
//	[{"key": "0x646f67", "value": "0x7075707079"}, ...]
//
// Flags:
//
//	--db         LevelDB directory to persist trie nodes into (default: none)
//	--verbosity  Log level 0-5 (default: 3)
//	--version    Print version and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trieforge/trieforge/log"
	"github.com/trieforge/trieforge/trie"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	fs := flag.NewFlagSet("trieroot", flag.ContinueOnError)
	dbDir := fs.String("db", "", "LevelDB directory to persist trie nodes into")
	verbosity := fs.Int("verbosity", 3, "log level 0-5")
	printVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *printVersion {
		fmt.Println("trieroot", version)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trieroot [flags] pairs.json")
		return 2
	}

	log.SetDefault(log.New(log.VerbosityToLevel(*verbosity)))
	logger := log.Default().Module("trieroot")

	pairs, err := loadPairs(fs.Arg(0))
	if err != nil {
		logger.Error("failed to load pairs", "file", fs.Arg(0), "err", err)
		return 1
	}
	logger.Info("loaded pairs", "file", fs.Arg(0), "count", len(pairs))

	var writer trie.NodeWriter
	if *dbDir != "" {
		store, err := trie.OpenLevelDBStore(*dbDir)
		if err != nil {
			logger.Error("failed to open node store", "dir", *dbDir, "err", err)
			return 1
		}
		defer store.Close()
		writer = store
		logger.Info("persisting trie nodes", "dir", *dbDir)
	}

	root := trie.RootFromPairs(pairs, writer)
	fmt.Println(root.Hex())
	return 0
}

// jsonPair is the on-disk pair format, both fields 0x-prefixed hex.
type jsonPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// loadPairs reads and decodes a JSON pair file.
func loadPairs(path string) ([]trie.KeyValuePair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePairs(data)
}

func parsePairs(data []byte) ([]trie.KeyValuePair, error) {
	var raw []jsonPair
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid pair file: %w", err)
	}
	pairs := make([]trie.KeyValuePair, 0, len(raw))
	for i, p := range raw {
		key, err := hexutil.Decode(p.Key)
		if err != nil {
			return nil, fmt.Errorf("pair %d: bad key %q: %w", i, p.Key, err)
		}
		value, err := hexutil.Decode(p.Value)
		if err != nil {
			return nil, fmt.Errorf("pair %d: bad value %q: %w", i, p.Value, err)
		}
		pairs = append(pairs, trie.KeyValuePair{Key: key, Value: value})
	}
	return pairs, nil
}
