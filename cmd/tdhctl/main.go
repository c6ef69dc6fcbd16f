package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tdhctl/internal/config"
	"github.com/danmuck/tdhctl/internal/logging"
	"github.com/danmuck/tdhctl/internal/observability"
	"github.com/danmuck/tdhctl/internal/server"
	"github.com/danmuck/tdhctl/internal/source"
	"github.com/danmuck/tdhctl/internal/tdh"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "providers":
		runProviders(os.Args[2:])
	case "events":
		runEvents(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "init-config":
		runInitConfig(os.Args[2:])
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fatalf("unknown command %q (supported: providers, events, serve, init-config)", os.Args[1])
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: tdhctl <command> [flags]

Commands:
  providers     list registered event providers
  events        list every event version one provider declares
  serve         expose the provider catalog over HTTP
  init-config   write a config template

Run tdhctl <command> -h for command flags.
`)
}

func runProviders(args []string) {
	fs := flag.NewFlagSet("providers", flag.ExitOnError)
	configPath := fs.String("config", "", "config path (TOML)")
	format := fs.String("format", "", "output format: text|json")
	jsonOut := fs.Bool("json", false, "shorthand for -format json")
	schema := fs.String("schema", "", "keep providers with this schema source")
	name := fs.String("name", "", "keep providers whose name contains this substring")
	fs.Parse(args)

	cfg := mustConfig(*configPath)
	if *format != "" {
		cfg.Format = *format
	}
	if *jsonOut {
		cfg.Format = "json"
	}
	if *schema != "" {
		cfg.Schema = *schema
	}
	if *name != "" {
		cfg.NameContains = *name
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	logging.ConfigureRuntime(cfg.App)
	providers, err := newCatalog().Providers()
	if err != nil {
		log.Fatal().Err(err).Msg("provider enumeration failed")
	}
	providers = filterProviders(cfg, providers)

	if cfg.Format == "json" {
		printJSON(providers)
		return
	}
	for _, p := range providers {
		fmt.Println(providerLine(p))
	}
	fmt.Printf("\n%d providers\n", len(providers))
}

func runEvents(args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	configPath := fs.String("config", "", "config path (TOML)")
	format := fs.String("format", "", "output format: text|json")
	jsonOut := fs.Bool("json", false, "shorthand for -format json")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("events: exactly one provider GUID argument required")
	}
	guid, err := tdh.NormalizeGUID(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	cfg := mustConfig(*configPath)
	if *format != "" {
		cfg.Format = *format
	}
	if *jsonOut {
		cfg.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	logging.ConfigureRuntime(cfg.App)
	events, err := newCatalog().ProviderEvents(guid)
	if err != nil {
		log.Fatal().Err(err).Str("provider", guid).Msg("event enumeration failed")
	}

	if cfg.Format == "json" {
		printJSON(events)
		return
	}
	fmt.Printf("Provider %s\n", guid)
	for _, ev := range events {
		fmt.Println(eventHeading(ev))
		for _, f := range ev.Fields {
			fmt.Printf("    %-28s %s%s\n", f.Name, f.InType, fieldSuffix(f))
		}
	}
	fmt.Printf("\n%d event versions\n", len(events))
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "config path (TOML)")
	addr := fs.String("addr", "", "listen address override")
	fs.Parse(args)

	cfg := mustConfig(*configPath)
	if *addr != "" {
		cfg.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	logging.ConfigureRuntime(cfg.App)
	srv := server.New(cfg.App, cfg.Addr, cfg.CORSOrigins, newCatalog())
	if err := srv.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func runInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	kind := fs.String("kind", "cli", "template kind: cli|serve")
	output := fs.String("output", "cmd/tdhctl/config.toml", "output path for the template")
	force := fs.Bool("force", false, "overwrite an existing file")
	fs.Parse(args)

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s config template to %s\n", *kind, *output)
}

func mustConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

func newCatalog() *tdh.Catalog {
	src, err := source.System()
	if err != nil {
		log.Fatal().Err(err).Msg("no metadata source available")
	}
	return tdh.NewCatalog(observability.InstrumentSource(src))
}

func filterProviders(cfg config.Config, providers []tdh.Provider) []tdh.Provider {
	out := make([]tdh.Provider, 0, len(providers))
	for _, p := range providers {
		if cfg.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func providerLine(p tdh.Provider) string {
	return fmt.Sprintf("%s  %-12s  %s", p.GUID, p.Schema, p.Name)
}

func eventHeading(ev tdh.Event) string {
	heading := fmt.Sprintf("  event %d v%d", ev.ID, ev.Version)
	if ev.Name != "" {
		heading += "  " + ev.Name
	}
	return fmt.Sprintf("%s  keyword=%#x", heading, ev.Keyword)
}

// fieldSuffix renders the length or count reference of a field, if any.
func fieldSuffix(f tdh.Field) string {
	switch {
	case !f.Length.IsZero():
		return "  len=" + f.Length.String()
	case !f.Count.IsZero():
		return "  count=" + f.Count.String()
	}
	return ""
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encode json: %v", err)
	}
	fmt.Println(string(b))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tdhctl: "+format+"\n", args...)
	os.Exit(1)
}
