package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/config"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/extract"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/logging"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/schemas"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Score a PDF, DOC or DOCX resume",
	Long: `Extract the text of a resume file and print its match score, the
skills, action verbs and soft skills found, and improvement suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat resume: %w", err)
	}

	logger, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := analysis.NewService(extract.New(), scoring.NewScorer(scoring.DefaultCatalog()), analysis.Options{
		UploadDir: cfg.UploadDir,
		MaxBytes:  cfg.MaxUploadBytes,
		Logger:    logger,
	})

	result, err := svc.Analyze(cmd.Context(), analysis.Upload{
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Body:     f,
	})
	if err != nil {
		return err
	}

	if analyzeJSON {
		return writeResultJSON(cmd.OutOrStdout(), result)
	}
	return writeResultText(cmd.OutOrStdout(), result)
}

// cliLogger logs to stderr so stdout carries only the result.
func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.NewTo(cfg.LogLevel, cfg.LogFormat, "stderr")
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func writeResultJSON(w io.Writer, result scoring.Result) error {
	if err := schemas.ValidateValue(schemas.AnalysisResult, result); err != nil {
		return fmt.Errorf("analysis result failed schema validation: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeResultText(w io.Writer, result scoring.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100\n", result.Score)
	writeList(&sb, "Skills found", result.Details.SkillsFound)
	writeList(&sb, "Action verbs found", result.Details.VerbsFound)
	writeList(&sb, "Soft skills found", result.Details.SoftSkillsFound)
	writeList(&sb, "Missing", result.Details.MissingElements)

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, s)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%s: none\n", label)
		return
	}
	fmt.Fprintf(sb, "%s (%d): %s\n", label, len(items), strings.Join(items, ", "))
}
