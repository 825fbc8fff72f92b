package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avolkov/guidecheck/internal/handler"
	appI18n "github.com/avolkov/guidecheck/internal/i18n"
	"github.com/avolkov/guidecheck/internal/match"
	"github.com/avolkov/guidecheck/internal/model"
	"github.com/avolkov/guidecheck/internal/review"
	"github.com/avolkov/guidecheck/internal/store"
	"github.com/avolkov/guidecheck/internal/trend"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "guidecheck",
		Short: "Marking-guide extraction analysis and review server",
	}

	serve := serveCmd()
	root.AddCommand(serve, matchCmd(), reportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `guidecheck --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "guidecheck.db", "SQLite database path")
	f.StringP("lang", "l", "en", "Message language (en, ru)")
	addAnalysisFlags(cmd)
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match student answers against guide questions",
		RunE:  runMatch,
	}
	f := cmd.Flags()
	f.StringP("questions", "q", "", "Path to guide questions JSON (required)")
	f.String("answers", "", "Path to student answers JSON (required)")
	f.Float64("similarity-threshold", match.DefaultSimilarityThreshold, "Fuzzy match acceptance threshold")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("questions")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's confidence trend report as JSON",
		RunE:  runReport,
	}
	f := cmd.Flags()
	f.String("db", "guidecheck.db", "SQLite database path")
	f.Int64("user-id", 0, "User to report on (required)")
	f.Int("days", 30, "Trailing day window")
	f.StringP("lang", "l", "en", "Message language (en, ru)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	addAnalysisFlags(cmd)

	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

// addAnalysisFlags registers the tunables of the analysis core.
func addAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("similarity-threshold", match.DefaultSimilarityThreshold, "Fuzzy match acceptance threshold")
	f.Float64("high-threshold", 0.8, "Minimum confidence classified high")
	f.Float64("medium-threshold", 0.6, "Minimum confidence classified medium")
	f.Float64("low-threshold", 0.4, "Minimum confidence classified low")
	f.Float64("weight-confidence", 0.4, "Quality weight of extraction confidence")
	f.Float64("weight-consistency", 0.3, "Quality weight of answer consistency")
	f.Float64("weight-clarity", 0.2, "Quality weight of question clarity")
	f.Float64("weight-completeness", 0.1, "Quality weight of extraction completeness")
}

func analysisConfig(v *viper.Viper) model.AnalysisConfig {
	cfg := model.DefaultConfig()
	cfg.SimilarityThreshold = v.GetFloat64("similarity-threshold")
	cfg.Levels = model.LevelThresholds{
		High:   v.GetFloat64("high-threshold"),
		Medium: v.GetFloat64("medium-threshold"),
		Low:    v.GetFloat64("low-threshold"),
	}
	cfg.Weights = model.ScoreWeights{
		Confidence:   v.GetFloat64("weight-confidence"),
		Consistency:  v.GetFloat64("weight-consistency"),
		Clarity:      v.GetFloat64("weight-clarity"),
		Completeness: v.GetFloat64("weight-completeness"),
	}
	return cfg
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("GUIDECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("guidecheck")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/guidecheck")
	v.AddConfigPath("/etc/guidecheck")
	v.AddConfigPath("/data")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	cfg := analysisConfig(v)
	h := handler.New(db, review.New(db, cfg), cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"db", v.GetString("db"),
		"lang", lang,
		"similarity_threshold", cfg.SimilarityThreshold,
	)
	return http.ListenAndServe(addr, r)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	var questions []model.Question
	if err := readJSONFile(v.GetString("questions"), &questions); err != nil {
		return err
	}
	var answers []model.StudentAnswer
	if err := readJSONFile(v.GetString("answers"), &answers); err != nil {
		return err
	}

	result, err := match.NewMatcher(v.GetFloat64("similarity-threshold")).Match(questions, answers)
	if err != nil {
		return fmt.Errorf("match answers: %w", err)
	}

	return writeJSONOutput(v.GetString("output"), result)
}

func runReport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	ctx := appI18n.WithLocalizer(context.Background(), appI18n.NewLocalizer(lang))

	svc := review.New(db, analysisConfig(v))
	report, err := svc.Trends(v.GetInt64("user-id"), v.GetInt("days"))
	if err != nil {
		return fmt.Errorf("build trend report: %w", err)
	}

	messages := make([]string, 0, len(report.Trend.Recommendations))
	for _, rec := range report.Trend.Recommendations {
		messages = append(messages, appI18n.T(ctx, recommendationMessageID(rec)))
	}

	return writeJSONOutput(v.GetString("output"), map[string]any{
		"report":   report,
		"messages": messages,
	})
}

func recommendationMessageID(c trend.RecommendationCode) string {
	switch c {
	case trend.RecQualityConcern:
		return "RecommendationQualityConcern"
	case trend.RecDeclining:
		return "RecommendationDeclining"
	case trend.RecImproving:
		return "RecommendationImproving"
	case trend.RecHighVariance:
		return "RecommendationHighVariance"
	}
	return string(c)
}

func readJSONFile(path string, into any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSONOutput(outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, _ = fmt.Fprintln(w)

	return nil
}
