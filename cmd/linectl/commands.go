package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/xelth-com/linerecords/internal/config"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/seed"
	"github.com/xelth-com/linerecords/internal/services/printer"
	"github.com/xelth-com/linerecords/internal/utils"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the demo line (safe to run repeatedly)",
		Action: withEnv(func(ctx context.Context, c *cli.Command, e *env) error {
			rep, err := seed.Run(ctx, e.db.DB)
			if err != nil {
				return err
			}
			if rep.Empty() {
				fmt.Println("nothing to seed")
				return nil
			}
			fmt.Printf("seeded %d validation items, %d documentation items, %d variants, %d stations, %d devices, %d BOM items, %d history entries\n",
				rep.ValidationItems, rep.DocumentationItems, rep.Variants, rep.Equipment, rep.Devices, rep.BomItems, rep.History)
			return nil
		}),
	}
}

func exportBOMCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-bom",
		Usage: "Write the BOM matrix and document history to an xlsx file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "bom.xlsx", Usage: "output file"},
		},
		Action: withEnv(func(ctx context.Context, c *cli.Command, e *env) error {
			f, err := e.bom.ExportXLSX(ctx)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(c.String("out")); err != nil {
				return err
			}
			fmt.Println("wrote", c.String("out"))
			return nil
		}),
	}
}

func labelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: "Render QR tag labels for the stations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "labels.pdf", Usage: "output file"},
			&cli.StringSliceFlag{Name: "id", Usage: "equipment id (repeatable, default all)"},
			&cli.StringFlag{Name: "suffix", Usage: "QR payload suffix (default LABEL_SUFFIX)"},
		},
		Action: withEnv(func(ctx context.Context, c *cli.Command, e *env) error {
			var list []models.Equipment
			if ids := c.StringSlice("id"); len(ids) > 0 {
				for _, raw := range ids {
					id, err := parseID(raw)
					if err != nil {
						return err
					}
					eq, err := e.equipment.Get(ctx, id)
					if err != nil {
						return err
					}
					list = append(list, *eq)
				}
			} else {
				overview, err := e.equipment.List(ctx)
				if err != nil {
					return err
				}
				for _, o := range overview {
					list = append(list, o.Equipment)
				}
			}

			suffix := c.String("suffix")
			if suffix == "" {
				suffix = e.cfg.LabelSuffix
			}
			pdf, err := printer.GenerateLabelsPDF(printer.LabelConfig{Suffix: suffix}, printer.EquipmentLabels(list))
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), pdf, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d labels to %s\n", len(list), c.String("out"))
			return nil
		}),
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Render the validation report of one station",
		ArgsUsage: "<equipment-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output file (default validation_<station>.pdf)"},
		},
		Action: withEnv(func(ctx context.Context, c *cli.Command, e *env) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected one equipment id")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}
			view, err := e.checklist.ValidationChecklist(ctx, id)
			if err != nil {
				return err
			}
			pdf, err := printer.ValidationReportPDF(view, time.Now())
			if err != nil {
				return err
			}
			out := c.String("out")
			if out == "" {
				out = fmt.Sprintf("validation_%s.pdf", view.Equipment.Station)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Printf("%s: %d%% validated, wrote %s\n", view.Equipment.Station, view.Progress.Percentage, out)
			return nil
		}),
	}
}

func progressCommand() *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show validation, documentation and device progress per station",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: withEnv(func(ctx context.Context, c *cli.Command, e *env) error {
			overview, err := e.equipment.List(ctx)
			if err != nil {
				return err
			}

			type row struct {
				ID            uint   `json:"id"`
				Station       string `json:"station"`
				Validation    int    `json:"validation"`
				Documentation int    `json:"documentation"`
				Devices       int    `json:"devices"`
				Band          string `json:"band"`
			}
			rows := make([]row, 0, len(overview))
			for _, o := range overview {
				doc, err := e.checklist.DocumentationProgress(ctx, o.ID)
				if err != nil {
					return err
				}
				rows = append(rows, row{
					ID:            o.ID,
					Station:       o.Station,
					Validation:    o.Validation.Percentage,
					Documentation: doc.Percentage,
					Devices:       o.Devices.Percentage,
					Band:          string(o.Validation.Band),
				})
			}

			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATION\tVALIDATION\tDOCUMENTATION\tDEVICES\tBAND")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%d%%\t%d%%\t%d%%\t%s\n", r.ID, r.Station, r.Validation, r.Documentation, r.Devices, r.Band)
			}
			return tw.Flush()
		}),
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:      "token",
		Usage:     "Issue an operator token for write access (needs JWT_SECRET)",
		ArgsUsage: "<operator>",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "ttl", Value: 30 * 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := utils.GenerateToken(cfg.JWTSecret, c.Args().First(), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
