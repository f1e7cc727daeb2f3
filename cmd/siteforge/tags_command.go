package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"siteforge/internal/manifest"
	"siteforge/internal/studio"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:         "tags",
		Short:       "Show the section hierarchy, including any manifest additions",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			session := studio.NewSession(nil)
			if manifestPath != "" {
				m, err := manifest.Load(manifestPath)
				if err != nil {
					return err
				}
				if err := m.ApplyTaxonomy(session); err != nil {
					return err
				}
			}

			rows := make([][]string, 0, 8)
			for _, section := range session.Tags.Sections() {
				cats := session.Tags.Categories(section.Name)
				if len(cats) == 0 {
					rows = append(rows, []string{section.Name, string(section.Kind), "", ""})
					continue
				}
				for _, cat := range cats {
					subs := session.Tags.Subcategories(section.Name, cat)
					rows = append(rows, []string{
						section.Name,
						string(section.Kind),
						cat,
						strings.Join(subs, ", "),
					})
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"SECTION", "KIND", "CATEGORY", "SUBCATEGORIES"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Manifest whose category declarations should be included")
	return cmd
}
