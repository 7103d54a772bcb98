// Package label renders print job payloads into ZPL.
package label

import (
	"fmt"

	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// Options configures a Formatter.
type Options struct {
	// Fields overrides the JMESPath expressions; zero value uses DefaultFieldExpressions.
	Fields *FieldExpressions
	// FoldDiacritics transliterates the rendered label to ASCII.
	FoldDiacritics bool
}

// Formatter turns payloads into printer markup. It holds no mutable state.
type Formatter struct {
	fields FieldExpressions
	fold   bool
}

// NewFormatter validates the field expressions and returns a Formatter.
func NewFormatter(opts Options) (*Formatter, error) {
	fields := DefaultFieldExpressions()
	if opts.Fields != nil {
		fields = *opts.Fields
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	return &Formatter{fields: fields, fold: opts.FoldDiacritics}, nil
}

// Format returns raw payloads unchanged and renders records as a pallet label.
func (f *Formatter) Format(p printing.Payload) (string, error) {
	if p.IsEmpty() {
		return "", apperrors.MalformedPayload("label data is required")
	}

	switch p.Kind {
	case printing.PayloadRaw:
		return p.Raw, nil
	case printing.PayloadRecord:
		rec, err := ExtractRecord(p.Record, f.fields)
		if err != nil {
			return "", err
		}
		return f.Render(rec), nil
	default:
		return "", apperrors.MalformedPayload(fmt.Sprintf("unsupported payload kind %q", p.Kind))
	}
}

// Render lays out an already normalized record.
func (f *Formatter) Render(rec PalletRecord) string {
	out := renderZPL(rec)
	if f.fold {
		out = FoldDiacritics(out)
	}
	return out
}
