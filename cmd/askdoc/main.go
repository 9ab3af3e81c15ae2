package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"askdoc/internal/api"
	"askdoc/internal/chunker"
	"askdoc/internal/config"
	"askdoc/internal/generation"
	"askdoc/internal/parser"
	"askdoc/internal/provider"
	"askdoc/internal/rag"
)

const (
	ProgramName = "askdoc"
	Version     = "v0.1.0"
)

const maxHistoryMessages = 20

type chatCmd struct {
	Config   string `arg:"--config,-c" default:"askdoc.yaml" help:"path to the configuration file"`
	Document string `arg:"--file,-f" help:"document to load before the chat starts"`
}

type args struct {
	Chat *chatCmd `arg:"subcommand:chat" help:"start an interactive document chat"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: ProgramName}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	switch cmd := p.Subcommand().(type) {
	case *chatCmd:
		if err := runChat(cmd); err != nil {
			slog.Error("chat session failed", "err", err)
			os.Exit(1)
		}
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}
}

// session holds everything one interactive chat needs: the retrieval
// pipeline, the answerers and the running conversation history.
type session struct {
	userID   string
	pipeline *rag.Pipeline
	document *generation.DocumentAnswerer
	web      *generation.WebAnswerer
	history  []*api.ChatMessage
}

func runChat(cmd *chatCmd) error {
	cfg, err := config.ReadConfig(cmd.Config)
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.pipeline.Forget(s.userID)

	ctx := context.Background()

	if cmd.Document != "" {
		if err := s.loadDocument(ctx, cmd.Document); err != nil {
			return err
		}
	}

	fmt.Printf("%s %s - chat with your documents\n", ProgramName, Version)
	fmt.Println("commands: /load <path>, /web <query>, /reset, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "/quit" || line == "/exit" {
			break
		}

		s.handle(ctx, line)
	}

	return scanner.Err()
}

func newSession(cfg config.Config) (*session, error) {
	splitter, err := newSplitter(cfg.Chunker)
	if err != nil {
		return nil, err
	}

	embedderType, err := provider.ParseEmbedderType(cfg.Providers.Embedder)
	if err != nil {
		return nil, fmt.Errorf("embedder provider '%s': %w", cfg.Providers.Embedder, err)
	}
	embedder, err := provider.NewEmbedder(embedderType)
	if err != nil {
		return nil, err
	}

	lmType, err := provider.ParseLMProviderType(cfg.Providers.Completion)
	if err != nil {
		return nil, fmt.Errorf("completion provider '%s': %w", cfg.Providers.Completion, err)
	}
	lm, err := provider.NewLMProvider(lmType)
	if err != nil {
		return nil, err
	}

	searcher, err := provider.NewWebSearcher(provider.WebSearcherTypeTavily)
	if err != nil {
		return nil, err
	}

	pipeline := rag.New(splitter, embedder, nil)

	opts := []generation.DocumentAnswererOption{}
	if cfg.Retrieval.TopK > 0 {
		opts = append(opts, generation.WithTopK(cfg.Retrieval.TopK))
	}
	if cfg.Retrieval.Rerank {
		reranker, err := provider.NewReranker(provider.RerankerTypeCohere)
		if err != nil {
			return nil, err
		}
		opts = append(opts, generation.WithReranker(reranker))
	}

	return &session{
		userID:   uuid.NewString(),
		pipeline: pipeline,
		document: generation.NewDocumentAnswerer(pipeline, lm, opts...),
		web:      generation.NewWebAnswerer(searcher, lm),
	}, nil
}

// newSplitter builds the configured splitter. In sentence mode size is
// the number of sentences per chunk, in window mode it is runes.
func newSplitter(cfg config.ChunkerConfig) (chunker.Splitter, error) {
	switch cfg.Mode {
	case config.ChunkerModeSentence:
		return chunker.NewSentence(cfg.Size, cfg.Overlap)
	default:
		return chunker.NewWindow(cfg.Size, cfg.Overlap)
	}
}

func (s *session) handle(ctx context.Context, line string) {
	switch {
	case strings.HasPrefix(line, "/load "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/load "))
		if err := s.loadDocument(ctx, path); err != nil {
			fmt.Printf("failed to load document: %v\n", err)
		}

	case strings.HasPrefix(line, "/web "):
		query := strings.TrimSpace(strings.TrimPrefix(line, "/web "))
		s.answer(ctx, query, func() (api.CompletionStream, error) {
			return s.web.Answer(ctx, query, s.history)
		})

	case line == "/reset":
		s.pipeline.Forget(s.userID)
		s.history = nil
		fmt.Println("session cleared")

	case strings.HasPrefix(line, "/"):
		fmt.Printf("unknown command %q\n", strings.Fields(line)[0])

	default:
		s.answer(ctx, line, func() (api.CompletionStream, error) {
			return s.document.Answer(ctx, s.userID, line, s.history)
		})
	}
}

func (s *session) loadDocument(ctx context.Context, path string) error {
	content, err := parser.Parse(path)
	if err != nil {
		return err
	}

	count, err := s.pipeline.LoadDocument(ctx, s.userID, content.Text())
	if err != nil {
		return err
	}

	slog.Info("document loaded", "title", content.Title, "chunks", count)
	fmt.Printf("loaded %q (%d chunks)\n", content.Title, count)
	return nil
}

func (s *session) answer(ctx context.Context, query string, start func() (api.CompletionStream, error)) {
	stream, err := start()
	if errors.Is(err, rag.ErrNoDocumentLoaded) {
		fmt.Println("no document loaded yet, use /load <path> first")
		return
	}
	if err != nil {
		fmt.Printf("failed to answer: %v\n", err)
		return
	}

	answer, err := printStream(ctx, stream)
	if err != nil {
		fmt.Printf("\nstream interrupted: %v\n", err)
		return
	}

	s.remember(query, answer)
}

func printStream(ctx context.Context, stream api.CompletionStream) (string, error) {
	answer, err := api.StreamForEach(ctx, stream, func(chunk string) error {
		fmt.Print(chunk)
		return nil
	})
	fmt.Println()
	return answer, err
}

func (s *session) remember(query, answer string) {
	s.history = append(s.history,
		&api.ChatMessage{Role: api.RoleUser, Content: query},
		&api.ChatMessage{Role: api.RoleAssistant, Content: answer},
	)
	if len(s.history) > maxHistoryMessages {
		s.history = s.history[len(s.history)-maxHistoryMessages:]
	}
}
