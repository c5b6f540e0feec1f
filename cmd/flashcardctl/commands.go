package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phrazzld/scry-cards/internal/apiclient"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "flashcardctl",
		Short:         "Command line client for the flashcard generation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", apiclient.DefaultServerURL, "flashcard API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "request-timeout", 60*time.Second, "timeout for a single API request")

	root.AddCommand(
		newSubmitCmd(opts),
		newStatusCmd(opts),
		newResultCmd(opts),
		newGenerateCmd(opts),
		newWaitCmd(opts),
		newJobsCmd(opts),
	)
	return root
}

func (o *options) client() (*apiclient.Client, error) {
	return apiclient.New(o.server, nil)
}

// requestContext bounds a single request by --request-timeout.
func (o *options) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newSubmitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "submit TEXT",
		Short: "Create an asynchronous flashcard generation job",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			created, err := client.Submit(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to submit job: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status JOB_ID",
		Short: "Show the status of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			status, err := client.Status(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job status: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func newResultCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "result JOB_ID",
		Short: "Show the flashcards of a completed job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			result, err := client.Result(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job result: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newGenerateCmd(opts *options) *cobra.Command {
	var cardsOnly bool

	cmd := &cobra.Command{
		Use:   "generate TEXT",
		Short: "Generate flashcards synchronously",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			resp, err := client.Generate(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to generate flashcards: %w", err)
			}
			if cardsOnly {
				printCards(cmd.OutOrStdout(), resp.Flashcards.ParsedCards)
				if !resp.Success {
					return fmt.Errorf("generation failed: %s", resp.Flashcards.FinalRawOutput)
				}
				return nil
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().BoolVar(&cardsOnly, "cards", false, "print only the question and answer pairs")
	return cmd
}

func newWaitCmd(opts *options) *cobra.Command {
	var (
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait JOB_ID",
		Short: "Poll a job until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, err := client.Wait(ctx, args[0], interval)
			if err != nil {
				return fmt.Errorf("failed to wait for job: %w", err)
			}
			if err := printJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if status.Status == domain.JobStatusError {
				return fmt.Errorf("job %s failed", status.JobID)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "give up after this long")
	return cmd
}

func newJobsCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()

			list, err := client.Jobs(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of jobs to list")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCards(w io.Writer, cards []domain.Card) {
	for i, card := range cards {
		fmt.Fprintf(w, "%d. Q: %s\n   A: %s\n", i+1, card.Question, card.Answer)
	}
}
