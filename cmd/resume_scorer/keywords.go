package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/tables"
)

type extractOptions struct {
	jdFile     string
	jdURL      string
	jsonOutput bool
}

func newExtractKeywordsCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract-keywords",
		Short: "Extract required and preferred keywords from a job description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtractKeywords(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.jdFile, "jd", "", "Path to a job description (text or HTML, \"-\" for stdin)")
	cmd.Flags().StringVar(&opts.jdURL, "jd-url", "", "URL of a job posting")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the keywords as JSON")
	cmd.MarkFlagsOneRequired("jd", "jd-url")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-url")

	return cmd
}

func runExtractKeywords(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
	jd, err := loadJobDescription(cmd.Context(), cmd, root, opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(jd) == "" {
		return fmt.Errorf("job description is empty")
	}

	jk := keywords.New(tables.Default()).ExtractFromJobDescription(jd)
	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), jk)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobKeywords(jk)
	return nil
}

func loadJobDescription(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *extractOptions) (string, error) {
	if opts.jdFile != "" {
		data, err := readInput(opts.jdFile, cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return "", err
	}
	page, err := fetch.JobPosting(ctx, opts.jdURL, fetchOptions(cfg.Fetch))
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

func newSynonymsCmd(_ *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "synonyms <keyword>",
		Short: "Show the synonym class of a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := keywords.New(tables.Default())
			synonyms := engine.GetAllSynonyms(args[0])
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"keyword":   args[0],
					"canonical": engine.Canonical(args[0]),
					"synonyms":  synonyms,
				})
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintSynonyms(args[0], synonyms)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the synonyms as JSON")

	return cmd
}
