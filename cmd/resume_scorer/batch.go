package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/adaptive"
)

type batchOptions struct {
	inFile      string
	concurrency int
	failOnError bool
}

type batchOutput struct {
	Items     []adaptive.BatchItem `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score many resumes concurrently",
		Long: "Score a JSON array of requests ({id, resume, level, role, mode, job_description, job_url}) " +
			"and print one JSON result per request, in input order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inFile, "in", "i", "", "Path to the requests JSON (\"-\" for stdin)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Maximum concurrent scoring calls (default from config)")
	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "Exit non-zero when any request fails")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// decodeBatch accepts either a bare array or {"requests": [...]}
func decodeBatch(data []byte) ([]adaptive.Request, error) {
	var reqs []adaptive.Request
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var wrapped struct {
			Requests []adaptive.Request `json:"requests"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("invalid batch file: %w", err)
		}
		reqs = wrapped.Requests
	} else if err := json.Unmarshal(trimmed, &reqs); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("batch file contains no requests")
	}
	return reqs, nil
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *batchOptions) error {
	ctx := cmd.Context()

	data, err := readInput(opts.inFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	reqs, err := decodeBatch(data)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(reqs) > a.cfg.Scoring.MaxBatchSize {
		return fmt.Errorf("batch of %d requests exceeds scoring.max_batch_size %d", len(reqs), a.cfg.Scoring.MaxBatchSize)
	}

	validate := validator.New()
	for i := range reqs {
		if reqs[i].Level == "" {
			reqs[i].Level = a.cfg.Scoring.DefaultLevel
		}
		if err := validate.Struct(reqs[i]); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
	}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = a.cfg.Scoring.BatchConcurrency
	}

	out := batchOutput{Items: a.scorer.ScoreBatch(ctx, reqs, concurrency)}
	var failures []string
	for _, item := range out.Items {
		if item.Result != nil {
			out.Succeeded++
			continue
		}
		out.Failed++
		failures = append(failures, item.ID)
	}
	a.logger.Info("batch scored", "succeeded", out.Succeeded, "failed", out.Failed)

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if opts.failOnError && len(failures) > 0 {
		return fmt.Errorf("%d of %d requests failed: %s", len(failures), len(out.Items), strings.Join(failures, ", "))
	}
	return nil
}
