package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"siteforge/internal/export"
	"siteforge/internal/sitedata"
)

type planFileView struct {
	Filename    string `json:"filename"`
	Section     string `json:"section"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Kind        string `json:"kind"`
	Mode        string `json:"mode"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the filenames an export would produce without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := ctx.loadSession(manifestPath)
			if err != nil {
				return err
			}

			// Plan against a throwaway document so the dry run cannot
			// leak mutations into a later export.
			doc := session.Document()
			if doc == nil {
				doc = sitedata.New()
			}
			counters := export.RecoverCounters(doc)
			plan := export.BuildPlan(session.Assets.Items(), session.Tags, sitedata.New(), counters)

			views := make([]planFileView, 0, len(plan))
			for _, planned := range plan {
				views = append(views, planFileView{
					Filename:    planned.Filename,
					Section:     planned.Asset.Path.Section,
					Category:    planned.Asset.Path.Category,
					Subcategory: planned.Asset.Path.Subcategory,
					Kind:        string(planned.Asset.Kind),
					Mode:        string(planned.Asset.Mode),
				})
			}

			if jsonOutput {
				return emitJSON(cmd.OutOrStdout(), views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No media files staged")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Filename, v.Section, v.Category, v.Subcategory, v.Kind, v.Mode})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"FILE", "SECTION", "CATEGORY", "SUBCATEGORY", "KIND", "MODE"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the batch manifest")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the plan as JSON")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}
