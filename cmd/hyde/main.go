package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/tmc/langchaingo/llms"

	"github.com/viant/hyde"
	"github.com/viant/hyde/cache"
	"github.com/viant/hyde/prompts"
	"github.com/viant/hyde/service"
	"github.com/viant/hyde/store"
)

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "embed":
		embedCmd(os.Args[2:])
	case "docs":
		docsCmd(os.Args[2:])
	case "add":
		addCmd(os.Args[2:])
	case "search":
		searchCmd(os.Args[2:])
	case "prompts":
		promptsCmd()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hyde <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  embed    Embed a query via hypothetical document generation")
	fmt.Fprintln(os.Stderr, "  docs     Embed documents directly (no generation)")
	fmt.Fprintln(os.Stderr, "  add      Embed documents and add them to the SQLite store")
	fmt.Fprintln(os.Stderr, "  search   HyDE-embed a query and search the SQLite store")
	fmt.Fprintln(os.Stderr, "  prompts  List built-in prompt template keys")
}

type commonFlags struct {
	configPath string
	promptKey  string
	promptURL  string
	candidates int
}

func registerCommon(flags *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	flags.StringVar(&c.configPath, "config", "", "config yaml (optional)")
	flags.StringVar(&c.promptKey, "prompt", prompts.WebSearch, "built-in prompt key")
	flags.StringVar(&c.promptURL, "prompt-url", "", "custom prompt template URL (overrides -prompt)")
	flags.IntVar(&c.candidates, "candidates", 0, "number of candidate documents to request")
	return c
}

func embedCmd(args []string) {
	flags := flag.NewFlagSet("embed", flag.ExitOnError)
	common := registerCommon(flags)
	query := flags.String("query", "", "query text (required)")
	flags.Parse(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if *query == "" {
		log.Fatalf("embed: -query is required")
	}
	svc, _ := buildService(ctx, common)
	vector, err := svc.EmbedQuery(ctx, *query)
	if err != nil {
		log.Fatalf("embed: %v", err)
	}
	printJSON(vector)
}

func docsCmd(args []string) {
	flags := flag.NewFlagSet("docs", flag.ExitOnError)
	common := registerCommon(flags)
	flags.Parse(args)
	texts := flags.Args()
	if len(texts) == 0 {
		log.Fatalf("docs: at least one document text is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	svc, _ := buildService(ctx, common)
	vectors, err := svc.EmbedDocuments(ctx, texts)
	if err != nil {
		log.Fatalf("docs: %v", err)
	}
	printJSON(vectors)
}

func addCmd(args []string) {
	flags := flag.NewFlagSet("add", flag.ExitOnError)
	common := registerCommon(flags)
	dbPath := flags.String("db", "", "SQLite database path (required)")
	flags.Parse(args)
	texts := flags.Args()
	if *dbPath == "" {
		log.Fatalf("add: -db is required")
	}
	if len(texts) == 0 {
		log.Fatalf("add: at least one document text is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	svc, _ := buildService(ctx, common)
	vectors, err := svc.EmbedDocuments(ctx, texts)
	if err != nil {
		log.Fatalf("add: embed documents: %v", err)
	}
	st, err := store.New(store.WithDSN(*dbPath))
	if err != nil {
		log.Fatalf("add: store init: %v", err)
	}
	defer func() { _ = st.Close() }()
	docs := make([]store.Document, len(texts))
	for i, text := range texts {
		docs[i] = store.Document{Content: text}
	}
	ids, err := st.Add(ctx, docs, vectors)
	if err != nil {
		log.Fatalf("add: %v", err)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func searchCmd(args []string) {
	flags := flag.NewFlagSet("search", flag.ExitOnError)
	common := registerCommon(flags)
	dbPath := flags.String("db", "", "SQLite database path (required)")
	query := flags.String("query", "", "query text (required)")
	topK := flags.Int("k", 5, "number of results")
	flags.Parse(args)
	if *dbPath == "" || *query == "" {
		log.Fatalf("search: -db and -query are required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	svc, cacheSvc := buildService(ctx, common)
	vector, err := svc.EmbedQuery(ctx, *query)
	if err != nil {
		log.Fatalf("search: embed query: %v", err)
	}
	st, err := store.New(store.WithDSN(*dbPath))
	if err != nil {
		log.Fatalf("search: store init: %v", err)
	}
	defer func() { _ = st.Close() }()
	results, err := st.Search(ctx, vector, *topK)
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	for _, doc := range results {
		fmt.Printf("%.4f\t%s\t%s\n", doc.Score, doc.ID, doc.Content)
	}
	if cacheSvc != nil {
		if err := cacheSvc.Save(ctx); err != nil {
			log.Printf("cache save: %v", err)
		}
	}
}

func promptsCmd() {
	for _, key := range prompts.Keys() {
		fmt.Println(key)
	}
}

// buildService assembles the hyde service from config and flags. The second
// return is the embedding cache when one is configured.
func buildService(ctx context.Context, common *commonFlags) (*hyde.Service, *cache.Service) {
	cfg := &service.Config{}
	if common.configPath != "" {
		loaded, err := service.LoadConfig(ctx, common.configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	llm, err := service.NewLLM(cfg.LLM)
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}
	base, err := service.NewEmbedder(ctx, cfg.Embedder)
	if err != nil {
		log.Fatalf("embedder init: %v", err)
	}

	var cacheSvc *cache.Service
	if cfg.Cache.Enabled {
		var cacheOpts []cache.Option
		if cfg.Cache.SnapshotURL != "" {
			cacheOpts = append(cacheOpts, cache.WithSnapshotURL(cfg.Cache.SnapshotURL))
		}
		cacheSvc = cache.New(base, cacheOpts...)
		if cfg.Cache.SnapshotURL != "" {
			if err := cacheSvc.Load(ctx); err != nil {
				log.Printf("cache load: %v", err)
			}
		}
		base = cacheSvc
	}

	opts := []hyde.Option{}
	switch {
	case common.promptURL != "":
		template, err := prompts.Load(ctx, common.promptURL, cfg.Prompt.Variable)
		if err != nil {
			log.Fatalf("load prompt: %v", err)
		}
		opts = append(opts, hyde.WithPrompt(template))
	case cfg.Prompt.Key != "":
		opts = append(opts, hyde.WithPromptKey(cfg.Prompt.Key))
	default:
		opts = append(opts, hyde.WithPromptKey(common.promptKey))
	}
	candidates := common.candidates
	if candidates == 0 {
		candidates = cfg.LLM.Candidates
	}
	if candidates > 0 {
		opts = append(opts, hyde.WithCallOptions(llms.WithCandidateCount(candidates)))
	}

	svc, err := hyde.New(llm, base, opts...)
	if err != nil {
		log.Fatalf("hyde init: %v", err)
	}
	return svc, cacheSvc
}

func printJSON(value interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	if err := encoder.Encode(value); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}
