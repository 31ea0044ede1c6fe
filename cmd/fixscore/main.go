package main

import (
	"fmt"
	"os"
	"strings"

	"fixscore/internal/browser"
	"fixscore/internal/config"
	"fixscore/internal/logging"
	"fixscore/internal/output"
	"fixscore/internal/scrape"
)

var version = "1.0.0"

// flags holds all parsed CLI options.
type flags struct {
	// Target
	country string
	league  string
	rounds  int

	// Config files
	mappingFile  string
	settingsFile string

	// Browser
	headless bool

	// Output
	outputDir string
	logFile   string
	verbose   bool

	// Meta
	showHelp    bool
	showVersion bool
}

func main() {
	enableANSI()
	f := parseFlags()

	if f.showVersion {
		fmt.Printf("fixscore v%s\n", version)
		os.Exit(0)
	}
	if f.showHelp {
		printUsage()
		os.Exit(0)
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Verbose:  f.verbose,
		FilePath: f.logFile,
	})
	if err != nil {
		fatal("logging setup failed: %v", err)
	}
	defer closeLog()

	settings := config.DefaultSettings()
	if path := config.ResolveSettingsPath(f.settingsFile); path != "" {
		settings, err = config.LoadSettings(path)
		if err != nil {
			fatal("%v", err)
		}
	}

	mapping, err := config.LoadMapping(f.mappingFile)
	if err != nil {
		fatal("%v", err)
	}

	run, err := config.NewRun(mapping, settings, f.country, f.league, f.rounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n  %s %v\n\n", clr("red", "ERROR:"), err)
		printUsage()
		os.Exit(1)
	}

	writer, err := output.NewWriter(f.outputDir)
	if err != nil {
		fatal("%v", err)
	}

	session, err := browser.Launch(f.headless, browser.Options{
		Timeout:         settings.FindTimeout(),
		PollInterval:    settings.PollInterval(),
		PageLoadTimeout: settings.PageLoadTimeout(),
		Logger:          logger,
	})
	if err != nil {
		fatal("browser launch failed: %v", err)
	}
	defer session.Close()

	// Wiring. One session, one team cache, one extractor chain.
	cache := scrape.NewTeamCache()
	base := scrape.NewMatchExtractor(session, cache)
	teams := scrape.NewTeamExtractor(session, cache)
	played := scrape.NewPlayedMatchExtractor(session, base)
	form := scrape.NewTeamFormService(session, played, settings.FormMatches)
	h2h := scrape.NewHeadToHeadService(session, played, settings.HeadToHeadMatches)
	builder := scrape.NewFixtureExtractor(session, base, teams, form, h2h)
	source := scrape.NewFixtureURLSource(session, run)

	coordinator := scrape.NewCoordinator(source, builder, settings.MaxConsecutiveFaults, logger)

	// Ctrl+C finishes the current target, then writes what was extracted.
	sig := make(chan os.Signal, 1)
	registerSignals(sig)
	go func() {
		<-sig
		fmt.Fprintf(os.Stderr, "\n  %s interrupt received, stopping after current target\n", clr("yellow", "!"))
		coordinator.Stop()
	}()

	fmt.Printf("\n  %s %s / %s, %d round(s)\n\n",
		clr("cyan", "Target:"), run.Country, run.League, run.Rounds)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range coordinator.Events() {
			handleEvent(event)
		}
	}()

	fixtures := coordinator.ExtractFixtures()
	<-done

	if err := writer.WriteFixtures(fixtures, coordinator.Errors()); err != nil {
		fatal("write output: %v", err)
	}
	if err := writer.WriteReport(fixtures, coordinator.Errors()); err != nil {
		fatal("write report: %v", err)
	}

	fmt.Printf("\n  %s %d fixture(s) written to %s\n",
		clr("green", "✓"), len(fixtures), writer.FixturesPath())
	if !coordinator.Errors().Empty() {
		fmt.Printf("  %s %d problem(s) recorded in %s\n",
			clr("yellow", "!"), coordinator.Errors().Len(), writer.ErrorsPath())
	}
	fmt.Println()
}

func handleEvent(event scrape.Event) {
	switch event.Type {
	case scrape.EventURLsDiscovered:
		fmt.Printf("  %s %d match page(s) discovered\n", clr("cyan", "●"), event.Total)
	case scrape.EventFixtureStarted:
		fmt.Printf("  %s [%d/%d] %s\n", clr("dim", "●"), event.Done+1, event.Total, event.Message)
	case scrape.EventFixtureDone:
		fmt.Printf("  %s %s\n", clr("green", "✓"), event.Message)
	case scrape.EventFixtureSkipped:
		fmt.Printf("  %s skipped %s\n", clr("yellow", "-"), event.Message)
	case scrape.EventFixtureError:
		fmt.Printf("  %s %s\n", clr("red", "✗"), event.Message)
	case scrape.EventRunAborted:
		fmt.Printf("  %s %s\n", clr("red", "✗"), event.Message)
	}
}

// ---------- Flag parsing ----------

func parseFlags() *flags {
	f := &flags{
		rounds:      1,
		mappingFile: "mappings/leagues_url_mapping.json",
		outputDir:   "out",
		headless:    true,
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			fatal("flag %s requires an argument", arg)
			return ""
		}
		nextInt := func() int {
			v := next()
			var n int
			fmt.Sscanf(v, "%d", &n)
			return n
		}

		switch arg {
		// Target
		case "-c", "--country":
			f.country = strings.ToLower(next())
		case "-l", "--league":
			f.league = strings.ToLower(next())
		case "-r", "--rounds":
			f.rounds = nextInt()

		// Config files
		case "--mapping":
			f.mappingFile = next()
		case "--config":
			f.settingsFile = next()

		// Browser
		case "--headless":
			f.headless = true
		case "--no-headless":
			f.headless = false

		// Output
		case "-o", "--output":
			f.outputDir = next()
		case "--log-file":
			f.logFile = next()
		case "-v", "--verbose":
			f.verbose = true

		// Meta
		case "-h", "--help":
			f.showHelp = true
		case "--version":
			f.showVersion = true

		default:
			fatal("unknown flag: %s", arg)
		}
	}

	return f
}

func printUsage() {
	fmt.Print(`
USAGE:
  fixscore -c <country> -l <league> [flags]
  fixscore -c england -l premier-league -r 2

TARGET:
  -c,  --country <string>   country of the league to extract (required)
  -l,  --league <string>    league to extract (required)
  -r,  --rounds <int>       number of upcoming rounds to extract (default 1)

CONFIG:
       --mapping <file>     league URL mapping file (default "mappings/leagues_url_mapping.json")
       --config <file>      YAML settings file (default "settings.yaml" when present)

BROWSER:
       --headless           run the browser headless (default)
       --no-headless        show the browser window

OUTPUT:
  -o,  --output <dir>       output directory (default "out")
       --log-file <file>    duplicate logs into a JSON lines file
  -v,  --verbose            debug level console logging

META:
  -h,  --help               show this help
       --version            show version
`)
}

// ---------- Utilities ----------

func clr(color, text string) string {
	codes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"cyan":   "\033[36m",
		"dim":    "\033[2m",
		"reset":  "\033[0m",
	}
	c, ok := codes[color]
	if !ok {
		return text
	}
	return c + text + codes["reset"]
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\n  %s %s\n\n", clr("red", "ERROR:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
