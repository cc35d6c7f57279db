package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/adaptive"
	"github.com/jonathan/resume-scorer/internal/grammar"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

type scoreOptions struct {
	resumeFile    string
	level         string
	role          string
	mode          string
	jdFile        string
	jdURL         string
	grammarIssues string
	jsonOutput    bool
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a parsed resume",
		Long: "Score a parsed resume JSON document. With a job description (--jd or --jd-url) the " +
			"resume is scored as an applicant tracking system would; otherwise it gets quality coaching.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumeFile, "resume", "r", "", "Path to resume JSON (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "", "Experience level: beginner, intermediary or senior (default from config)")
	cmd.Flags().StringVar(&opts.role, "role", "", "Target role, e.g. software_engineer")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "auto", "Scoring mode: auto, ats_simulation or quality_coach")
	cmd.Flags().StringVar(&opts.jdFile, "jd", "", "Path to a job description (text or HTML)")
	cmd.Flags().StringVar(&opts.jdURL, "jd-url", "", "URL of a job posting to fetch the description from")
	cmd.Flags().StringVar(&opts.grammarIssues, "grammar-issues", "", "Path to a JSON array of grammar issues to use instead of the checker")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-url")

	return cmd
}

func runScore(cmd *cobra.Command, root *rootOptions, opts *scoreOptions) error {
	ctx := cmd.Context()

	data, err := readInput(opts.resumeFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	resume, err := schemas.DecodeResume(data)
	if err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}

	req := adaptive.Request{
		Resume: resume,
		Mode:   opts.mode,
		Level:  opts.level,
		Role:   opts.role,
		JobURL: opts.jdURL,
	}
	if opts.jdFile != "" {
		jd, err := readInput(opts.jdFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		req.JobDescription = string(jd)
	}
	if opts.grammarIssues != "" {
		checker, err := grammar.LoadIssuesFile(opts.grammarIssues)
		if err != nil {
			return err
		}
		req.GrammarIssues = checker.Issues
		if req.GrammarIssues == nil {
			req.GrammarIssues = []types.GrammarIssue{}
		}
	}

	a, err := newApp(ctx, root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if req.Level == "" {
		req.Level = a.cfg.Scoring.DefaultLevel
	}

	result, err := a.scorer.Score(ctx, req)
	if err != nil {
		return err
	}
	return writeScore(cmd.OutOrStdout(), result, opts.jsonOutput)
}

func writeScore(out io.Writer, result *types.ScoreResult, asJSON bool) error {
	if asJSON {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintScore(result)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
