// Package main provides the Marvel API command line client.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/marvelgo/internal/app/filter"
	"github.com/osa030/marvelgo/internal/domain/entity"
	"github.com/osa030/marvelgo/internal/infra/config"
	"github.com/osa030/marvelgo/internal/infra/logger"
	"github.com/osa030/marvelgo/internal/infra/marvel"
)

var (
	app        = kingpin.New("marvelcli", "Marvel Comics API client")
	configPath = app.Flag("config", "Path to config file (optional, MARVEL_* variables are read either way)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// get command
	getCmd  = app.Command("get", "Fetch one resource by id")
	getKind = getCmd.Arg("kind", "Resource kind, such as comic or characters").Required().String()
	getID   = getCmd.Arg("id", "Resource id").Required().Int()

	// aliases command
	aliasesCmd = app.Command("aliases", "List the filter aliases and exit")

	// criteria command
	criteriaCmd  = app.Command("criteria", "List the search criteria of a resource and exit")
	criteriaKind = criteriaCmd.Arg("kind", "Resource kind").Required().String()

	searchCmds = map[string]*searchCommand{}
)

type searchCommand struct {
	resource marvel.Resource
	criteria *map[string]string
	limit    *int
	pageSize *int
}

func init() {
	for _, r := range marvel.Resources() {
		cmd := app.Command(r.Name, fmt.Sprintf("Search %s", r.Name))
		searchCmds[cmd.FullCommand()] = &searchCommand{
			resource: r,
			criteria: cmd.Flag("criteria", "Search criteria as key=value; id lists are comma separated").Short('c').StringMap(),
			limit:    cmd.Flag("limit", "Maximum number of records to print (0 for all)").Default("20").Int(),
			pageSize: cmd.Flag("page-size", "Records per request (default from config)").Int(),
		}
	}
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case aliasesCmd.FullCommand():
		printAliases(os.Stdout)
		return
	case criteriaCmd.FullCommand():
		if err := printCriteria(os.Stdout, *criteriaKind); err != nil {
			app.Fatalf("%v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		app.Fatalf("failed to load config: %v", err)
	}

	// Override with command-line flags if specified
	logConfig := logger.Config{Output: cfg.Log.Output, Level: cfg.Log.Level, File: cfg.Log.File}
	if *verbose {
		logConfig.Level = "debug"
	}
	if *logfile != "" {
		logConfig.Output = "file"
		logConfig.File = *logfile
	}
	closer, err := logger.Init(logConfig)
	if err != nil {
		app.Fatalf("failed to initialize logger: %v", err)
	}
	defer closer.Close()

	if err := run(command, cfg); err != nil {
		zlog.Error().Msgf("%s failed: %v", command, err)
		closer.Close()
		os.Exit(1)
	}
}

// run executes one API command. Using a separate function ensures deferred
// calls run before the process exits.
func run(command string, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := marvel.New(marvel.Config{
		PublicKey:  cfg.API.PublicKey,
		PrivateKey: cfg.API.PrivateKey,
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout(),
		RetryMax:   cfg.API.RetryMax,
		CacheTTL:   cfg.Cache.TTL(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create Marvel client")
	}

	enc := json.NewEncoder(os.Stdout)

	if command == getCmd.FullCommand() {
		r, ok := marvel.LookupResource(*getKind)
		if !ok {
			return errors.Newf("unknown resource %q", *getKind)
		}
		record, err := client.GetAny(ctx, r, *getID)
		if err != nil {
			return err
		}
		return enc.Encode(record)
	}

	sc, ok := searchCmds[command]
	if !ok {
		return errors.Newf("unknown command %q", command)
	}
	pageSize := *sc.pageSize
	if pageSize <= 0 {
		pageSize = cfg.Search.PageSize
	}
	if *sc.limit > 0 && *sc.limit < pageSize {
		pageSize = *sc.limit
	}

	criteria, err := parseCriteria(sc.resource.Kind, *sc.criteria)
	if err != nil {
		return err
	}
	coll, err := client.FindAll(sc.resource, criteria, pageSize)
	if err != nil {
		return err
	}

	n := 0
	for coll.Next(ctx) {
		if err := enc.Encode(coll.Value()); err != nil {
			return errors.Wrap(err, "failed to write record")
		}
		n++
		if *sc.limit > 0 && n >= *sc.limit {
			break
		}
	}
	if err := coll.Err(); err != nil {
		return err
	}
	zlog.Info().Msgf("printed %d of %d %s", n, coll.Total(), sc.resource.Name)
	return nil
}

// parseCriteria turns command line criteria into search criteria. Values of
// list fields are split on commas.
func parseCriteria(kind entity.Kind, raw map[string]string) (map[string]any, error) {
	spec, ok := entity.CriteriaSpec(kind)
	if !ok {
		return nil, errors.Newf("%s is not searchable", kind)
	}
	lists := lo.FilterMap(spec, func(f filter.FieldSpec, _ int) (string, bool) {
		return f.Name, lo.SomeBy(f.Steps, func(s filter.Step) bool { return s.Alias == "ofScalars" })
	})

	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if lo.Contains(lists, key) {
			out[key] = lo.Map(strings.Split(value, ","), func(s string, _ int) string {
				return strings.TrimSpace(s)
			})
			continue
		}
		out[key] = value
	}
	return out, nil
}

func printAliases(w io.Writer) {
	fmt.Fprintln(w, "Available filter aliases:")
	for _, alias := range entity.Registry().Aliases() {
		fmt.Fprintf(w, "  %s\n", alias)
	}
}

func printCriteria(w io.Writer, kind string) error {
	r, ok := marvel.LookupResource(kind)
	if !ok {
		return errors.Newf("unknown resource %q", kind)
	}
	spec, _ := entity.CriteriaSpec(r.Kind)
	names := spec.Names()
	sort.Strings(names)

	fmt.Fprintf(w, "Search criteria for %s:\n", r.Name)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
