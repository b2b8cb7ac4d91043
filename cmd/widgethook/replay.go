package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/widgethook/pkg/scenario"
	"github.com/vango-dev/widgethook/pkg/widget/standard"
)

type replayOptions struct {
	s3Region   string
	s3Endpoint string
	verbose    bool
}

func replayCmd() *cobra.Command {
	var opts replayOptions

	cmd := &cobra.Command{
		Use:   "replay <scenario>...",
		Short: "Replay recorded render sequences",
		Long: `Replay recorded render sequences against the stock widgets.

Each scenario runs against a fresh controller. Steps whose outcome
differs from their expectation are reported and make the command fail.

Scenarios are local YAML files or S3 objects.

Examples:
  widgethook replay testdata/select.yaml
  widgethook replay s3://replays/menu.yaml --s3-region=eu-west-1
  widgethook replay s3://replays/menu.yaml --s3-endpoint=http://localhost:9000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.s3Region, "s3-region", "us-east-1", "Region of the S3 bucket")
	cmd.Flags().StringVar(&opts.s3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (S3-compatible stores)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print every step, not only mismatches")

	return cmd
}

// newS3Client builds an anonymous client; replays are read from public or
// local buckets.
func newS3Client(opts replayOptions) *s3.Client {
	o := s3.Options{
		Region:      opts.s3Region,
		Credentials: aws.AnonymousCredentials{},
	}
	if opts.s3Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.s3Endpoint)
		o.UsePathStyle = true
	}
	return s3.New(o)
}

func runReplay(ctx context.Context, out io.Writer, uris []string, opts replayOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var client scenario.GetObjectAPI
	for _, uri := range uris {
		if scenario.IsS3(uri) {
			client = newS3Client(opts)
			break
		}
	}

	runner := &scenario.Runner{Registry: standard.Registry(), Logger: slog.Default()}
	failed := 0
	for _, uri := range uris {
		s, err := scenario.Open(ctx, uri, client)
		if err != nil {
			return err
		}
		report, err := runner.Run(ctx, s)
		if err != nil {
			return err
		}
		printReport(out, report, opts.verbose)
		if !report.OK() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios had mismatches", failed, len(uris))
	}
	return nil
}

func printReport(out io.Writer, report *scenario.Report, verbose bool) {
	mismatches := report.Mismatches()
	if len(mismatches) == 0 {
		fmt.Fprintf(out, "\033[32m✓\033[0m %s (%d steps)\n", report.Scenario, len(report.Steps))
	} else {
		fmt.Fprintf(out, "\033[31m✗\033[0m %s (%d of %d steps mismatched)\n", report.Scenario, len(mismatches), len(report.Steps))
	}

	rows := mismatches
	if verbose {
		rows = report.Steps
	}
	if len(rows) == 0 {
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  STEP\tOP\tOUTCOME\tEXPECT\tCOMPONENT\tDIAGNOSTICS")
	for _, st := range rows {
		mark := ""
		if !st.Matched() {
			mark = " ✗"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s%s\t%s\t%s\t%s\n",
			st.Index, st.Op, st.Outcome, mark, dash(st.Expect), dash(st.Component), dash(strings.Join(st.Diagnostics, ",")))
	}
	tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
