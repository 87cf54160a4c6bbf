package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/embedding"
	"github.com/spigell/resume-ranker/internal/embedding/gemini"
	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/job"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/report"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/secrets"
)

const (
	PromptShowBreakdown       = "Show score breakdown"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append failed resumes to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score resumes against job requirements and print a ranking",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("requirements", "r", "", "file with the job requirements (json or yaml)")
	rankCmd.Flags().String("resumes-dir", "", "directory with resume files to rank")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with resumes to exclude. Default is unset.")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do with the results")
	rankCmd.Flags().IntP("top", "t", 0, "show only the top N candidates (0 shows all)")
	rankCmd.Flags().IntP("workers", "w", 0, "number of concurrent scoring workers")

	viper.BindPFlag("requirements", rankCmd.Flags().Lookup("requirements"))
	viper.BindPFlag("resumes-dir", rankCmd.Flags().Lookup("resumes-dir"))
	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("workers", rankCmd.Flags().Lookup("workers"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Requirements == "" {
		logger.Fatal("a requirements file is required",
			zap.String("hint", "pass --requirements or set 'requirements' in the configuration file"),
		)
	}

	if config.ResumesDir == "" {
		logger.Fatal("a resumes directory is required",
			zap.String("hint", "pass --resumes-dir or set 'resumes-dir' in the configuration file"),
		)
	}

	requirements, err := job.FromFile(config.Requirements)
	if err != nil {
		logger.Fatal("loading job requirements", zap.Error(err))
	}

	embedder, err := newEmbedder(ctx, config.Semantic, logger)
	if err != nil {
		logger.Fatal("configuring the embedding provider", zap.Error(err))
	}

	if embedder != nil {
		embedder = embedJobDescription(ctx, embedder, requirements, logger)
	}

	sources, err := resume.Discover(config.ResumesDir)
	if err != nil {
		logger.Fatal("discovering resumes", zap.Error(err))
	}

	logger.Info("discovered resumes", zap.Int("count", sources.Len()))

	if sources.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	filters := filtering.New(logger,
		filtering.NewUnsupportedFormat(logger),
		filtering.NewExcludeFile(config.ExcludeFile, logger),
	)

	sources, err = filters.Run(ctx, sources)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if sources.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes left after filters"))
		return
	}

	candidates, loadFailures := loadCandidates(ctx, sources, embedder, logger)

	ranker := ranking.New(logger, ranking.WithWorkers(config.Workers))
	ranked, scoreFailures := ranker.RankBatch(ctx, requirements, candidates)

	results := report.New(ranked, append(loadFailures, scoreFailures...))

	top, _ := cmd.Flags().GetInt("top")
	fmt.Print(results.Table(top))

	logger.Info("ranking completed",
		zap.Int("ranked", len(results.Entries)),
		zap.Int("failed", len(results.Failures)),
	)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		if err := promptAction(config, results, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func promptAction(config *Config, results *report.Results, logger *zap.Logger) error {
	items := []string{PromptShowBreakdown, PromptResultsToFile}
	if config.ExcludeFile != "" && len(results.Failures) > 0 {
		items = append(items, PromptAppendToExcludeFile)
	}

	prompt := promptui.Select{
		Label: "What now?",
		Items: append(items, PromptExit),
	}

	_, action, err := prompt.Run()
	if err != nil {
		return err
	}

	switch action {
	case PromptShowBreakdown:
		fmt.Print(results.BreakdownReport())
		return nil
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		excluded, err := resume.ExcludedFromFile(config.ExcludeFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if excluded == nil {
			excluded = &resume.ExcludedSources{}
		}

		excluded.Append(resume.NewExcluded(results.FailedIDs(), "failed to score"))

		if err := excluded.ToFile(config.ExcludeFile); err != nil {
			return err
		}

		logger.Info("appended to exclude file", zap.String("filename", config.ExcludeFile))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadCandidates turns sources into scorable candidates. A resume that cannot
// be parsed becomes a failure; it never aborts the run.
func loadCandidates(ctx context.Context, sources *resume.Sources, embedder embedding.Embedder, logger *zap.Logger) ([]ranking.Candidate, []ranking.Failure) {
	extractor := extract.New(embedder, logger)

	candidates := make([]ranking.Candidate, 0, sources.Len())
	failures := make([]ranking.Failure, 0)

	for _, source := range sources.Items {
		features, err := loadFeatures(ctx, extractor, embedder, source)
		if err != nil {
			logger.Warn("skipping resume",
				zap.String("resume", source.ID),
				zap.Error(err),
			)
			failures = append(failures, ranking.Failure{ID: source.ID, Err: err})
			continue
		}
		candidates = append(candidates, ranking.Candidate{ID: source.ID, Features: features})
	}

	return candidates, failures
}

func loadFeatures(ctx context.Context, extractor *extract.Extractor, embedder embedding.Embedder, source *resume.Source) (*feature.Features, error) {
	data, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	switch source.Ext {
	case ".txt":
		return extractor.FromText(ctx, string(data))
	case ".json":
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %s", feature.ErrInvalidInput, err)
		}

		features, err := feature.Decode(payload)
		if err != nil {
			return nil, err
		}

		if embedder != nil && len(features.Embedding) == 0 && features.ProcessedText != "" {
			vector, err := embedder.Embed(ctx, features.ProcessedText)
			if err != nil {
				return nil, fmt.Errorf("embedding resume text: %w", err)
			}
			features.Embedding = vector
		}

		return features, nil
	default:
		return nil, fmt.Errorf("unsupported resume format: %s", source.Ext)
	}
}

// newEmbedder builds the embedding provider for the vector semantic strategy.
// The token strategy needs none and returns nil.
func newEmbedder(ctx context.Context, cfg *SemanticConfig, log *zap.Logger) (embedding.Embedder, error) {
	if cfg == nil {
		return nil, nil
	}

	strategy := strings.TrimSpace(strings.ToLower(cfg.Strategy))
	switch strategy {
	case "", "token":
		return nil, nil
	case "vector":
	default:
		return nil, fmt.Errorf("unsupported semantic strategy: %s", cfg.Strategy)
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "bow":
		bow := embedding.NewBOW(cfg.Dimension)
		log.Info("using local embedding provider", logger.CommonFields("bow", bow.Model())...)
		return bow, nil
	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("gemini configuration is required for the gemini provider")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set semantic.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		embedLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

		embedder, err := gemini.New(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, embedLogger)
		if err != nil {
			return nil, err
		}

		log.Info("using remote embedding provider", logger.CommonFields("gemini", embedder.Model())...)
		return embedder, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// embedJobDescription embeds the job description once for the whole run.
// When embedding fails the run falls back to token similarity instead of
// aborting.
func embedJobDescription(ctx context.Context, embedder embedding.Embedder, requirements *job.Requirements, log *zap.Logger) embedding.Embedder {
	vector, err := embedder.Embed(ctx, requirements.JobDescription)
	if err != nil {
		log.Warn("embedding the job description failed; falling back to token similarity",
			zap.Error(err),
		)
		return nil
	}

	if len(vector) == 0 {
		log.Warn("job description produced an empty embedding; falling back to token similarity")
		return nil
	}

	requirements.Embedding = vector
	return embedder
}
