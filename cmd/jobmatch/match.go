package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"jobmatch/internal/app"
	"jobmatch/internal/delivery/http/dto"
	"jobmatch/internal/logger"
	"jobmatch/internal/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type matchOptions struct {
	keywords  string
	minScore  int
	location  string
	contract  string
	sortBy    string
	sortOrder string
	limit     int
	output    string
	timeout   time.Duration
}

var filterFlags = []string{"min-score", "location", "contract", "sort-by", "sort-order"}

func newMatchCmd(root *rootOptions) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Fetch job offers and print them ranked against the candidate profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.keywords, "keywords", "k", "", "search keywords forwarded to the sources")
	f.IntVar(&opts.minScore, "min-score", 0, "minimum match score (inclusive)")
	f.StringVarP(&opts.location, "location", "l", "", "location substring filter")
	f.StringVar(&opts.contract, "contract", "", "contract type filter (CDI, CDD, ...)")
	f.StringVar(&opts.sortBy, "sort-by", "", "score, date or location")
	f.StringVar(&opts.sortOrder, "sort-order", "", "asc or desc")
	f.IntVarP(&opts.limit, "limit", "n", 20, "maximum number of jobs to print")
	f.StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	f.DurationVar(&opts.timeout, "timeout", time.Minute, "overall fetch timeout")

	return cmd
}

func runMatch(cmd *cobra.Command, root *rootOptions, opts *matchOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	q := dto.MatchQuery{
		Keywords:     opts.keywords,
		Location:     opts.location,
		ContractType: opts.contract,
		SortBy:       opts.sortBy,
		SortOrder:    opts.sortOrder,
		PageSize:     &opts.limit,
	}
	if cmd.Flags().Changed("min-score") {
		q.MinMatchScore = &opts.minScore
	}
	for _, name := range filterFlags {
		if cmd.Flags().Changed(name) {
			q.MarkFiltered()
			break
		}
	}
	if errs := q.Validate(); errs != nil {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			parts = append(parts, e.Field+" ("+e.Rule+")")
		}
		return fmt.Errorf("invalid flags: %s", strings.Join(parts, ", "))
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	zl, err := root.logger()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	c, err := app.NewContainer(cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	page, size := q.Paging()
	res, err := c.Matches.Matches(ctx, usecase.MatchParams{
		Keywords: q.Keywords,
		Filters:  q.Filters(),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewMatchesResponse(res))
	}
	printMatches(out, res)
	return nil
}

func printMatches(w io.Writer, res usecase.MatchResult) {
	fmt.Fprintf(w, "%d matching jobs for %s (showing %d)\n\n", res.TotalJobs, res.Profile.Name, len(res.Jobs))
	fmt.Fprintf(w, "%-6s %-8s %-22s %-32s %-20s %s\n", "Score", "Contract", "Location", "Title", "Company", "URL")
	fmt.Fprintln(w, strings.Repeat("─", 120))

	for _, j := range res.Jobs {
		score := fmt.Sprintf("%-6d", j.MatchScore)
		switch {
		case j.MatchScore >= 70:
			score = color.GreenString("%s", score)
		case j.MatchScore >= 40:
			score = color.YellowString("%s", score)
		default:
			score = color.RedString("%s", score)
		}

		fmt.Fprintf(w, "%s %-8s %-22s %-32s %-20s %s\n",
			score,
			logger.Truncate(j.ContractType, 5),
			logger.Truncate(j.Location, 19),
			logger.Truncate(j.Title, 29),
			logger.Truncate(j.Company, 17),
			j.URL,
		)
	}
}
