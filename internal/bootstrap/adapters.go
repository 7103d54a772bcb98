package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/mleczna-droga/printbridge/config"
	"github.com/mleczna-droga/printbridge/internal/adapters/zebra"
	"github.com/mleczna-droga/printbridge/internal/domain/label"
)

// NewLabelFormatter builds the ZPL formatter from label configuration.
func NewLabelFormatter(cfg config.LabelConfig) (*label.Formatter, error) {
	f, err := label.NewFormatter(label.Options{FoldDiacritics: cfg.ASCIIFold})
	if err != nil {
		return nil, fmt.Errorf("create label formatter: %w", err)
	}
	return f, nil
}

// NewPrinterClient builds the raw TCP client used for delivery and probing.
func NewPrinterClient(cfg config.PrintersConfig, logger *slog.Logger) *zebra.Client {
	return zebra.NewClient(zebra.Options{
		Port:         cfg.Port,
		Timeout:      cfg.Timeout,
		ProbeTimeout: cfg.ProbeTimeout,
		Logger:       logger,
	})
}
