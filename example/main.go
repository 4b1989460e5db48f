package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/theflywheel/chainmap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var in io.Reader = strings.NewReader(sample)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			logger.Fatal("failed to open input", zap.String("path", os.Args[1]), zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	counts, err := countWords(in, logger)
	if err != nil {
		logger.Fatal("failed to count words", zap.Error(err))
	}
	logger.Info("counted words",
		zap.Int("distinct", counts.Len()),
		zap.Int("buckets", counts.Capacity()))

	// Top words, sorted by count then alphabetically
	type wordCount struct {
		word  string
		count int
	}
	var top []wordCount
	for w, n := range counts.All() {
		top = append(top, wordCount{w, n})
	}
	slices.SortFunc(top, func(a, b wordCount) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.word, b.word)
	})
	for _, wc := range top[:min(5, len(top))] {
		fmt.Printf("%-12s %d\n", wc.word, wc.count)
	}

	// Lookups through a byte slice do not allocate a string
	if n, ok := chainmap.GetAs(counts, []byte("the"), chainmap.BytesAsString{}); ok {
		fmt.Printf("\"the\" appears %d times\n", n)
	}

	if n, ok := counts.Remove("and"); ok {
		fmt.Printf("Removed \"and\" (%d occurrences), %d words left\n", n, counts.Len())
	}

	fmt.Println("Example completed successfully")
}

// countWords tallies lower-cased words read from r.
func countWords(r io.Reader, logger *zap.Logger) (*chainmap.Table[string, int], error) {
	counts := chainmap.New[string, int](chainmap.WithLogger(logger))

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := strings.ToLower(strings.Trim(scanner.Text(), ".,;:!?\"'()"))
		if word == "" {
			continue
		}
		*counts.Entry(word).OrInsert(0)++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return counts, nil
}

const sample = `A hash table maps keys to values. The table hashes each key and
uses the digest to pick a bucket; the bucket holds a chain of pairs, and the
chain is scanned until the key is found. When the table fills up, the number
of buckets doubles and every pair is moved to its new bucket.`
