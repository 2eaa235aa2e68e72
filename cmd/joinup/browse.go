package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"joinup/internal/cli/output"
	"joinup/internal/database"
	"joinup/internal/filter"
	"joinup/internal/repository"
	"joinup/internal/usecase"

	"github.com/spf13/cobra"
)

// facetFlags maps each facet to the values given on the command line.
type facetFlags map[filter.Facet]*[]string

func bindFacets(cmd *cobra.Command, specs []filter.FacetSpec) facetFlags {
	flags := facetFlags{}
	for _, s := range specs {
		vals := []string{}
		name := strings.ReplaceAll(string(s.Facet), "_", "-")
		cmd.Flags().StringSliceVar(&vals, name, nil, fmt.Sprintf("Filter by %s (repeatable)", strings.ReplaceAll(string(s.Facet), "_", " ")))
		flags[s.Facet] = &vals
	}
	return flags
}

func (f facetFlags) engine(specs []filter.FacetSpec) *filter.Engine {
	return filter.FromQuery(specs, func(key string) []string {
		if vals, ok := f[filter.Facet(key)]; ok {
			return *vals
		}
		return nil
	})
}

// newBrowse reads straight from Postgres; the CLI never touches the list cache.
func newBrowse(db database.DB) *usecase.Browse {
	return usecase.NewBrowseUsecase(
		repository.NewPostgresProjectRepository(db),
		repository.NewPostgresUserRepository(db),
		nil,
		logger,
	)
}

var projectFlags facetFlags

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List active projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db database.DB) error {
			res, err := newBrowse(db).Projects(ctx, projectFlags.engine(filter.ProjectFacets))
			if err != nil {
				return err
			}
			table := ui.Table([]string{"Title", "Category", "Duration", "Skills", "Hires", "Posted"})
			for _, p := range res.Items {
				title := p.Title
				if p.IsUrgent {
					title += " (urgent)"
				}
				_ = table.Append([]string{
					output.Truncate(title, 40),
					p.Category,
					p.Duration,
					output.Truncate(strings.Join(p.Skills, ", "), 30),
					fmt.Sprintf("%d/%d", p.CurrentHires, p.MaxHires),
					p.PostedDate,
				})
			}
			if err := table.Render(); err != nil {
				return err
			}
			printSummary(res.Total, res.Active)
			return nil
		})
	},
}

var studentFlags facetFlags

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List student profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db database.DB) error {
			res, err := newBrowse(db).Students(ctx, studentFlags.engine(filter.StudentFacets))
			if err != nil {
				return err
			}
			table := ui.Table([]string{"Name", "Major", "Year", "Level", "Availability", "Rating", "Skills"})
			for _, s := range res.Items {
				_ = table.Append([]string{
					s.Name,
					s.Major,
					s.Year,
					s.ExperienceLevel,
					s.AvailabilityBucket,
					strconv.FormatFloat(s.Rating, 'f', 1, 64),
					output.Truncate(strings.Join(s.Skills, ", "), 30),
				})
			}
			if err := table.Render(); err != nil {
				return err
			}
			printSummary(res.Total, res.Active)
			return nil
		})
	},
}

func printSummary(total int, active []string) {
	if len(active) == 0 {
		ui.Info("%d result(s)", total)
		return
	}
	ui.Info("%d result(s) for %s", total, strings.Join(active, ", "))
}

func statusColor(s string) string {
	return output.StatusColor(s)
}

func init() {
	projectFlags = bindFacets(projectsCmd, filter.ProjectFacets)
	studentFlags = bindFacets(studentsCmd, filter.StudentFacets)
}
