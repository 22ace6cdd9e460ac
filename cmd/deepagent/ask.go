package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"deepagent/internal/agent"
	"deepagent/internal/cli"
	"deepagent/internal/config"
	"deepagent/internal/hook"
	"deepagent/internal/hook/handlers"
	"deepagent/internal/llm"
	"deepagent/internal/llm/openai"
	"deepagent/internal/search"
	"deepagent/internal/tool"

	"github.com/spf13/cobra"
)

type askOptions struct {
	related      string
	relatedFile  string
	apiKey       string
	apiBaseURL   string
	model        string
	temperature  float32
	backend      string
	alwaysSearch bool
	stream       bool
}

func newAskCmd() *cobra.Command {
	return bindAskCmd(&askOptions{})
}

func bindAskCmd(opts *askOptions) *cobra.Command {
	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the agent a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, strings.Join(args, " "))
		},
	}

	askCmd.Flags().StringVar(&opts.related, "related", "", "Known information to include in the prompt")
	askCmd.Flags().StringVar(&opts.relatedFile, "related-file", "", "Read known information from a file")
	askCmd.Flags().StringVar(&opts.apiKey, "api-key", "", "OpenAI API key (default: $OPENAI_API_KEY)")
	askCmd.Flags().StringVar(&opts.apiBaseURL, "api-base-url", "", "OpenAI API base URL (default: $OPENAI_API_BASE_URL)")
	askCmd.Flags().StringVar(&opts.model, "model", "", "Model to use")
	askCmd.Flags().Float32Var(&opts.temperature, "temperature", 0.7, "Temperature")
	askCmd.Flags().StringVar(&opts.backend, "search", "", "Search backend: duckduckgo, brave, tavily or mcp")
	askCmd.Flags().BoolVar(&opts.alwaysSearch, "always-search", false, "Search the question before asking the model")
	askCmd.Flags().BoolVar(&opts.stream, "stream", false, "Stream the final answer as it is generated")

	return askCmd
}

// applyFlags layers explicitly set flags and environment fallbacks over cfg
func (o *askOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("api-key") {
		cfg.LLM.APIKey = o.apiKey
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if flags.Changed("api-base-url") {
		cfg.LLM.BaseURL = o.apiBaseURL
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OPENAI_API_BASE_URL")
	}
	if flags.Changed("model") {
		cfg.LLM.Model = o.model
	}
	if flags.Changed("temperature") {
		cfg.LLM.Temperature = o.temperature
	}
	if flags.Changed("search") {
		cfg.Search.Backend = o.backend
	}
	if flags.Changed("always-search") {
		cfg.Agent.AlwaysSearch = o.alwaysSearch
	}

	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("OpenAI API key required (set OPENAI_API_KEY or use --api-key)")
	}
	return cfg.Validate()
}

func (o *askOptions) relatedContent() (string, error) {
	if o.relatedFile == "" {
		return o.related, nil
	}
	data, err := os.ReadFile(o.relatedFile)
	if err != nil {
		return "", fmt.Errorf("failed to read related file: %w", err)
	}
	if o.related == "" {
		return string(data), nil
	}
	return o.related + "\n" + string(data), nil
}

func runAsk(cmd *cobra.Command, opts *askOptions, question string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := opts.applyFlags(cmd, cfg); err != nil {
		return err
	}

	related, err := opts.relatedContent()
	if err != nil {
		return err
	}

	log := newLogger()

	log.Debug("Creating LLM client (model: %s)", cfg.LLM.Model)
	client := openai.NewClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)

	genOpts := []llm.GeneratorOption{
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithStop(cfg.LLM.Stop...),
	}
	gen := llm.NewGenerator(client, genOpts...)

	log.Debug("Opening search backend: %s", cfg.Search.Backend)
	searcher, closeSearch, err := search.Open(ctx, cfg.Search)
	if err != nil {
		return err
	}
	defer closeSearch()

	var agentOpts []agent.Option

	var renderer *cli.StreamRenderer
	if opts.stream {
		w := cli.NewStreamingWriter(cmd.OutOrStdout())
		w.SetColorMode(!noColor)
		renderer = cli.NewStreamRenderer(w)
		answerer := llm.NewGenerator(client, append(genOpts, llm.WithStreaming(renderer.RenderDelta))...)
		agentOpts = append(agentOpts, agent.WithAnswerGenerator(answerer))
	}

	if cfg.Hooks.SearchConfirm {
		hooks := hook.NewManager()
		hooks.Register(handlers.NewSearchConfirmHandler(tool.DeepSearch.String()))
		log.Debug("Hooks enabled: %v", hooks.ListHandlers(hook.BeforeToolExecution))
		agentOpts = append(agentOpts, agent.WithHooks(hooks))
	}

	ag := agent.NewDeepAgent(gen, tool.NewSearchTool(searcher), agent.Config{
		AlwaysSearch: cfg.Agent.AlwaysSearch,
	}, agentOpts...)

	answer, err := ag.Query(agent.WithLogger(ctx, log), related, question)
	if err != nil {
		log.Error("Agent execution failed: %v", err)
		return err
	}

	if renderer != nil && renderer.Rendered() {
		renderer.RenderComplete()
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
