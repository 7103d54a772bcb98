package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/internal/bootstrap"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	"github.com/mleczna-droga/printbridge/internal/service"
)

func printersCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "printers",
		Short: "Inspect the printer directory",
	}

	c.AddCommand(printersListCmd(a), printersProbeCmd(a))
	return c
}

func printersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured printers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := bootstrap.LoadDirectory(a.cfg.Printers)
			if err != nil {
				return err
			}
			if dir.Len() == 0 {
				return writef(cmd.OutOrStdout(), "(no printers configured)\n")
			}

			tw := newTable(cmd.OutOrStdout())
			if err := writef(tw, "NAME\tIP\tDESCRIPTION\n"); err != nil {
				return err
			}
			for _, p := range dir.List() {
				if err := writef(tw, "%s\t%s\t%s\n", p.Name, p.IP, dash(p.Description)); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
}

func printersProbeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe [name...]",
		Short: "Check which printers accept connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := bootstrap.LoadDirectory(a.cfg.Printers)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if dir, err = subset(dir, args); err != nil {
					return err
				}
			}

			svc, err := service.NewPrinterStatusService(service.PrinterStatusServiceOptions{
				Directory:   dir,
				Prober:      bootstrap.NewPrinterClient(a.cfg.Printers, a.logger),
				Logger:      a.logger,
				Concurrency: a.cfg.Printers.ProbeConcurrency,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Printers.ProbeTimeout+10*time.Second)
			defer cancel()
			statuses, err := svc.ProbeAll(ctx)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			if err := writef(tw, "NAME\tIP\tREACHABLE\tLATENCY\tERROR\n"); err != nil {
				return err
			}
			for _, st := range statuses {
				latency := "-"
				if st.Reachable {
					latency = fmt.Sprintf("%dms", st.LatencyMS)
				}
				if err := writef(tw, "%s\t%s\t%t\t%s\t%s\n", st.Name, st.IP, st.Reachable, latency, dash(st.Error)); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
	return cmd
}

// subset narrows dir to the named printers.
func subset(dir *printing.Directory, names []string) (*printing.Directory, error) {
	picked := make([]printing.Printer, 0, len(names))
	for _, name := range names {
		p, ok := dir.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown printer %q", name)
		}
		picked = append(picked, p)
	}
	return printing.NewDirectory(picked)
}
