package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/internal/bootstrap"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	"github.com/mleczna-droga/printbridge/internal/service"
)

func printCmd(a *app) *cobra.Command {
	var (
		src         payloadSource
		printerName string
		ip          string
		jobType     string
	)

	cmd := &cobra.Command{
		Use:   "print [file|-]",
		Short: "Send label data straight to a printer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if printerName == "" && ip == "" {
				return errors.New("one of --printer or --ip is required")
			}
			payload, err := src.read(cmd, args)
			if err != nil {
				return err
			}

			dir, err := bootstrap.LoadDirectory(a.cfg.Printers)
			if err != nil {
				return err
			}
			formatter, err := bootstrap.NewLabelFormatter(a.cfg.Label)
			if err != nil {
				return err
			}
			svc, err := service.NewPrintJobService(service.PrintJobServiceOptions{
				Directory: dir,
				Formatter: formatter,
				Deliverer: bootstrap.NewPrinterClient(a.cfg.Printers, a.logger),
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}

			res, err := svc.Submit(cmd.Context(), printing.JobRequest{
				Payload:     payload,
				PrinterName: printerName,
				IP:          ip,
				JobType:     jobType,
			})
			if err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "job %s sent to %s (%d bytes in %s)\n",
				res.JobID, res.Delivery.Addr, res.Delivery.Bytes, res.Delivery.Duration.Round(time.Millisecond))
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&printerName, "printer", "p", "", "printer name from the directory")
	cmd.Flags().StringVar(&ip, "ip", "", "printer address, overrides --printer")
	cmd.Flags().StringVar(&jobType, "job-type", printing.DefaultJobType, "job type recorded in logs and metrics")
	return cmd
}
