package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/internal/bootstrap"
	"github.com/mleczna-droga/printbridge/internal/data"
	"github.com/mleczna-droga/printbridge/internal/domain/model"
)

func jobsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect the print job history",
	}

	c.AddCommand(jobsListCmd(a))
	return c
}

func jobsListCmd(a *app) *cobra.Command {
	var (
		printerName string
		status      string
		since       time.Duration
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent print jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := model.PrintJobListOptions{PrinterName: printerName, Limit: limit}
			if status != "" {
				var st model.PrintJobStatus
				if err := st.UnmarshalText([]byte(status)); err != nil {
					return err
				}
				opts.Status = &st
			}
			if since > 0 {
				from := time.Now().Add(-since)
				opts.Since = &from
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := bootstrap.ConnectDB(ctx, a.cfg.Postgres)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer func() { _ = db.Close() }()

			jobs, err := data.NewPrintJobRepo(data.NewStaticDB(db)).List(ctx, opts.Normalize())
			if err != nil {
				return err
			}
			return writeJobs(cmd, jobs)
		},
	}

	cmd.Flags().StringVarP(&printerName, "printer", "p", "", "only jobs sent to this printer")
	cmd.Flags().StringVar(&status, "status", "", "succeeded or failed")
	cmd.Flags().DurationVar(&since, "since", 0, "only jobs started within this window, e.g. 24h")
	cmd.Flags().IntVarP(&limit, "limit", "n", model.DefaultPrintJobListLimit, "maximum number of jobs")
	return cmd
}

func writeJobs(cmd *cobra.Command, jobs []*model.PrintJob) error {
	if len(jobs) == 0 {
		return writef(cmd.OutOrStdout(), "(no jobs found)\n")
	}

	tw := newTable(cmd.OutOrStdout())
	if err := writef(tw, "STARTED\tID\tPRINTER\tIP\tSTATUS\tSTATE\tBYTES\tERROR\n"); err != nil {
		return err
	}
	for _, j := range jobs {
		printer := ""
		if j.PrinterName != nil {
			printer = *j.PrinterName
		}
		errText := ""
		if j.Error != nil {
			errText = *j.Error
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			j.StartedAt.Local().Format(time.DateTime), j.ID, dash(printer), j.IP,
			j.Status, j.State, j.Bytes, dash(errText)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
