// Command leaguemap builds the country to league to URL mapping file the
// extraction engine validates its arguments against.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fixscore/internal/leagueindex"
	"fixscore/internal/logging"
)

const (
	defaultIndexURL = "https://www.flashscore.com/football/"
	defaultOutFile  = "mappings/leagues_url_mapping.json"
)

func main() {
	indexURL := defaultIndexURL
	outFile := defaultOutFile

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "flag -o requires an argument")
				os.Exit(1)
			}
			i++
			outFile = args[i]
		case "-u", "--url":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "flag -u requires an argument")
				os.Exit(1)
			}
			i++
			indexURL = args[i]
		case "-h", "--help":
			fmt.Println("usage: leaguemap [-u index-url] [-o output-file]")
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "unknown flag: %s\n", args[i])
			os.Exit(1)
		}
	}

	logger, closeLog, err := logging.Setup(logging.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	crawler := leagueindex.NewCrawler(leagueindex.CrawlerConfig{
		Delay:  500 * time.Millisecond,
		Logger: logger,
	})

	mapping, err := crawler.BuildMapping(indexURL)
	if err != nil {
		logger.Error("index crawl failed", "error", err)
		os.Exit(1)
	}

	if err := writeMapping(outFile, mapping); err != nil {
		logger.Error("write mapping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("mapping written", "path", outFile, "countries", len(mapping))
}

func writeMapping(path string, mapping map[string]map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(mapping, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
