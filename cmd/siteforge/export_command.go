package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"siteforge/internal/export"
	"siteforge/internal/imaging"
	"siteforge/internal/services"
)

type exportFileView struct {
	Asset    string `json:"asset_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type exportResultView struct {
	RunID        string           `json:"run_id"`
	DocumentPath string           `json:"document_path"`
	DocumentErr  string           `json:"document_error,omitempty"`
	Files        []exportFileView `json:"files"`
	Failures     int              `json:"failures"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run a manifest and write the renamed media plus updated site document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session, _, err := ctx.loadSession(manifestPath)
			if err != nil {
				return err
			}

			driver := export.NewDriver(cfg, imaging.NewRenderer(), logger)
			result, err := driver.Export(cmd.Context(), session.ExportInput())
			if err != nil {
				if errors.Is(err, services.ErrNoContent) {
					return fmt.Errorf("nothing to export: the manifest stages no media and names no site document")
				}
				return err
			}

			view := buildExportView(result)
			if jsonOutput {
				if err := emitJSON(cmd.OutOrStdout(), view); err != nil {
					return err
				}
			} else {
				printExportResult(cmd, view)
			}

			if result.Failures > 0 || result.DocumentErr != nil {
				return fmt.Errorf("export finished with %d failed file(s)", result.Failures)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the batch manifest")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func buildExportView(result *export.Result) exportResultView {
	view := exportResultView{
		RunID:        result.RunID,
		DocumentPath: result.DocumentPath,
		Failures:     result.Failures,
	}
	if result.DocumentErr != nil {
		view.DocumentErr = result.DocumentErr.Error()
	}
	for _, f := range result.Files {
		fv := exportFileView{Asset: f.AssetID, Filename: f.Filename, Status: "written"}
		if f.Err != nil {
			fv.Status = "failed"
			fv.Error = f.Err.Error()
		}
		view.Files = append(view.Files, fv)
	}
	return view
}

func printExportResult(cmd *cobra.Command, view exportResultView) {
	out := cmd.OutOrStdout()
	color := shouldColorize(out)

	fmt.Fprintf(out, "Run %s\n", view.RunID)
	if view.DocumentErr != "" {
		fmt.Fprintf(out, "Document: %s (%s)\n", colorize("FAILED", ansiRed, color), view.DocumentErr)
	} else {
		fmt.Fprintf(out, "Document: %s\n", view.DocumentPath)
	}

	if len(view.Files) == 0 {
		fmt.Fprintln(out, "No media files staged")
		return
	}

	rows := make([][]string, 0, len(view.Files))
	for _, f := range view.Files {
		status := colorize(f.Status, ansiGreen, color)
		if f.Error != "" {
			status = colorize(f.Status, ansiRed, color) + ": " + f.Error
		}
		rows = append(rows, []string{f.Filename, f.Asset, status})
	}
	fmt.Fprintln(out, renderTable([]string{"FILE", "ASSET", "STATUS"}, rows))
}
