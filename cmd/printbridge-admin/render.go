package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/internal/bootstrap"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
)

// payloadSource reads label data from a file argument or stdin.
type payloadSource struct {
	raw bool
}

func (s *payloadSource) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.raw, "raw", false, "treat input as raw printer markup instead of JSON label data")
}

func (s *payloadSource) read(cmd *cobra.Command, args []string) (printing.Payload, error) {
	var (
		body []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		body, err = io.ReadAll(cmd.InOrStdin())
	} else {
		body, err = os.ReadFile(args[0])
	}
	if err != nil {
		return printing.Payload{}, fmt.Errorf("read label data: %w", err)
	}

	if s.raw {
		return printing.RawPayload(string(body)), nil
	}
	if !json.Valid(body) {
		return printing.Payload{}, errors.New("label data is not valid JSON (use --raw for markup)")
	}
	return printing.ParsePayload(body)
}

func renderCmd(a *app) *cobra.Command {
	var src payloadSource

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render label data to ZPL without printing",
		Long: "Render reads the JSON value a client would send as \"data\" to /print-label " +
			"(a pallet object or a ZPL string) and writes the resulting markup to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := src.read(cmd, args)
			if err != nil {
				return err
			}
			formatter, err := bootstrap.NewLabelFormatter(a.cfg.Label)
			if err != nil {
				return err
			}
			markup, err := formatter.Format(payload)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), markup)
			return err
		},
	}

	src.bind(cmd)
	return cmd
}
