package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mleczna-droga/printbridge/config"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
)

// printersFile is the on-disk shape of PRINTERS_FILE.
type printersFile struct {
	Printers []printing.Printer `yaml:"printers"`
}

// LoadDirectory builds the printer directory from PRINTERS_FILE followed by
// the inline PRINTERS list. An inline entry replaces a file entry of the same name.
func LoadDirectory(cfg config.PrintersConfig) (*printing.Directory, error) {
	var printers []printing.Printer
	if cfg.File != "" {
		fromFile, err := readPrintersFile(cfg.File)
		if err != nil {
			return nil, err
		}
		printers = fromFile
	}

	inline, err := parseInlinePrinters(cfg.Inline)
	if err != nil {
		return nil, err
	}
	printers = mergePrinters(printers, inline)

	dir, err := printing.NewDirectory(printers)
	if err != nil {
		return nil, fmt.Errorf("build printer directory: %w", err)
	}
	return dir, nil
}

func readPrintersFile(path string) ([]printing.Printer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read printers file: %w", err)
	}
	return decodePrinters(raw)
}

// decodePrinters accepts either a bare list or a document with a printers key.
func decodePrinters(raw []byte) ([]printing.Printer, error) {
	var list []printing.Printer
	if err := yaml.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var doc printersFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode printers file: %w", err)
	}
	return doc.Printers, nil
}

// parseInlinePrinters reads "name=ip" pairs separated by commas.
func parseInlinePrinters(raw string) ([]printing.Printer, error) {
	var out []printing.Printer
	for entry := range strings.SplitSeq(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, ip, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("PRINTERS entry %q: expected name=ip", entry)
		}
		out = append(out, printing.Printer{Name: strings.TrimSpace(name), IP: strings.TrimSpace(ip)})
	}
	return out, nil
}

func mergePrinters(base, overrides []printing.Printer) []printing.Printer {
	if len(overrides) == 0 {
		return base
	}
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[strings.TrimSpace(p.Name)] = i
	}
	for _, p := range overrides {
		if i, ok := index[p.Name]; ok {
			p.Description = base[i].Description
			base[i] = p
			continue
		}
		index[p.Name] = len(base)
		base = append(base, p)
	}
	return base
}
