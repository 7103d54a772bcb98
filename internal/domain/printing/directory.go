package printing

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// Printer is a named network label printer.
type Printer struct {
	Name        string `json:"name"                  yaml:"name"`
	IP          string `json:"ip"                    yaml:"ip"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Directory maps printer names to addresses. It is built once at startup and
// never mutated, so it can be shared across requests without locking.
type Directory struct {
	byName  map[string]Printer
	ordered []Printer
}

// NewDirectory validates printers and builds an immutable directory.
// Names are matched exactly; empty names, empty IPs and duplicates are rejected.
func NewDirectory(printers []Printer) (*Directory, error) {
	d := &Directory{byName: make(map[string]Printer, len(printers))}
	for i, p := range printers {
		p.Name = strings.TrimSpace(p.Name)
		p.IP = strings.TrimSpace(p.IP)
		p.Description = strings.TrimSpace(p.Description)
		if p.Name == "" {
			return nil, fmt.Errorf("printer #%d: name is required", i+1)
		}
		if p.IP == "" {
			return nil, fmt.Errorf("printer %q: ip is required", p.Name)
		}
		if _, dup := d.byName[p.Name]; dup {
			return nil, fmt.Errorf("printer %q: duplicate name", p.Name)
		}
		d.byName[p.Name] = p
		d.ordered = append(d.ordered, p)
	}
	sort.Slice(d.ordered, func(i, j int) bool { return d.ordered[i].Name < d.ordered[j].Name })
	return d, nil
}

// Resolve picks the address a job is sent to. A non-empty explicit IP always
// wins; otherwise the printer name is looked up. When neither yields an
// address a MissingTarget error is returned.
func (d *Directory) Resolve(explicitIP, printerName string) (string, error) {
	if ip := strings.TrimSpace(explicitIP); ip != "" {
		return ip, nil
	}

	name := strings.TrimSpace(printerName)
	if name == "" {
		return "", apperrors.MissingTarget("no printer IP or printer name given")
	}
	if p, ok := d.Lookup(name); ok {
		return p.IP, nil
	}
	return "", apperrors.MissingTarget(fmt.Sprintf("unknown printer %q and no IP given", name))
}

// Lookup returns the printer registered under name.
func (d *Directory) Lookup(name string) (Printer, bool) {
	if d == nil {
		return Printer{}, false
	}
	p, ok := d.byName[name]
	return p, ok
}

// List returns all printers sorted by name.
func (d *Directory) List() []Printer {
	if d == nil {
		return nil
	}
	out := make([]Printer, len(d.ordered))
	copy(out, d.ordered)
	return out
}

// Len returns the number of printers.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ordered)
}
