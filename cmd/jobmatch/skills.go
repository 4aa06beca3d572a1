package main

import (
	"fmt"
	"os"
	"strings"

	"jobmatch/internal/config"
	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"

	"github.com/spf13/cobra"
)

func newSkillsCmd(opts *rootOptions) *cobra.Command {
	var (
		score bool
		title string
	)

	cmd := &cobra.Command{
		Use:   "skills <text>",
		Short: "Print the canonical skills detected in a job description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			engine := matching.DefaultEngine()
			out := cmd.OutOrStdout()

			skills := engine.Extractor().ExtractSkills(text)
			if len(skills) == 0 {
				fmt.Fprintln(out, "no known skills detected")
			}
			for _, s := range skills {
				fmt.Fprintln(out, s)
			}

			if title != "" {
				fmt.Fprintf(out, "title relevant: %t\n", engine.Titles().IsRelevant(title))
			}
			if !score {
				return nil
			}

			path := opts.profile
			if path == "" {
				path = os.Getenv("PROFILE_FILE")
			}
			prof, err := config.LoadProfile(path)
			if err != nil {
				return err
			}
			res := engine.Calculator().Score(job.Posting{Title: title, Description: text}, prof)
			fmt.Fprintf(out, "match score: %d (%s)\n", res.MatchScore, strings.Join(res.MatchedSkills, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&score, "score", false, "also score the text against the candidate profile")
	cmd.Flags().StringVar(&title, "title", "", "job title to check against the relevance filter")
	return cmd
}
