package letters

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot of the fragment frequency tables, extracted from the same
// word list the game validates answers against.
//
//go:embed data/2strings.json data/3strings.json
var defaultData embed.FS

const (
	defaultTwoFile   = "data/2strings.json"
	defaultThreeFile = "data/3strings.json"
)

// Default builds a Pool from the embedded frequency snapshots.
func Default() (*Pool, error) {
	two, err := readEmbedded(defaultTwoFile)
	if err != nil {
		return nil, err
	}
	three, err := readEmbedded(defaultThreeFile)
	if err != nil {
		return nil, err
	}
	return NewPool(two, three)
}

// NewPoolFromFiles builds a Pool from two JSON documents, each mapping
// fragment to occurrence count. Missing or malformed files are fatal;
// the game loop never sees a partially built pool.
func NewPoolFromFiles(twoPath, threePath string) (*Pool, error) {
	two, err := readCounts(twoPath)
	if err != nil {
		return nil, err
	}
	three, err := readCounts(threePath)
	if err != nil {
		return nil, err
	}
	return NewPool(two, three)
}

func readCounts(path string) (map[string]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read letter data: %w", err)
	}
	return parseCounts(raw, path)
}

func readEmbedded(name string) (map[string]int, error) {
	raw, err := defaultData.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read embedded letter data: %w", err)
	}
	return parseCounts(raw, name)
}

func parseCounts(raw []byte, src string) (map[string]int, error) {
	counts := map[string]int{}
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("parse letter data %s: %w", src, err)
	}
	return counts, nil
}
