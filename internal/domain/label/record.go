package label

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// PalletRecord is the normalized content of a pallet label.
type PalletRecord struct {
	ID             string
	Name           string
	Batch          string
	ProductionDate string
	ExpiryDate     string
	Weight         string
	Notes          string
}

// FieldExpressions holds one JMESPath expression per label field. Each
// expression is evaluated against the decoded record object.
type FieldExpressions struct {
	ID             string
	Name           string
	Batch          string
	ProductionDate string
	ExpiryDate     string
	Weight         string
	Notes          string
}

// DefaultFieldExpressions accepts the warehouse UI's pallet shape plus the
// aliases used by older clients.
func DefaultFieldExpressions() FieldExpressions {
	return FieldExpressions{
		ID:             "palletId || id || identifier || sscc",
		Name:           "productName || name || product.name",
		Batch:          "batchNumber || batch || lot",
		ProductionDate: "productionDate || producedAt || production_date",
		ExpiryDate:     "expiryDate || expirationDate || bestBefore || expiry_date",
		Weight:         "weight || netWeight || weightKg",
		Notes:          "notes || note || comments",
	}
}

type fieldExpr struct {
	field string
	expr  string
}

func (f FieldExpressions) list() []fieldExpr {
	return []fieldExpr{
		{"id", f.ID},
		{"name", f.Name},
		{"batch", f.Batch},
		{"productionDate", f.ProductionDate},
		{"expiryDate", f.ExpiryDate},
		{"weight", f.Weight},
		{"notes", f.Notes},
	}
}

// Validate compiles every non-empty expression.
func (f FieldExpressions) Validate() error {
	for _, fe := range f.list() {
		if strings.TrimSpace(fe.expr) == "" {
			continue
		}
		if _, err := jmespath.Compile(fe.expr); err != nil {
			return fmt.Errorf("label field %s: compile %q: %w", fe.field, fe.expr, err)
		}
	}
	return nil
}

// ExtractRecord evaluates the field expressions against a decoded record and
// applies date truncation, weight rounding and notes flattening.
func ExtractRecord(fields map[string]any, exprs FieldExpressions) (PalletRecord, error) {
	values := make(map[string]string, 7)
	for _, fe := range exprs.list() {
		if strings.TrimSpace(fe.expr) == "" {
			continue
		}
		raw, err := jmespath.Search(fe.expr, fields)
		if err != nil {
			return PalletRecord{}, apperrors.Wrapf(err, apperrors.ErrCodeMalformedPayload, "evaluate label field %s", fe.field)
		}
		if fe.field == "weight" {
			switch raw.(type) {
			case map[string]any, []any:
				return PalletRecord{}, apperrors.MalformedPayloadf("label field weight: expected a number or string, got %T", raw)
			}
			values[fe.field] = RoundWeight(raw)
			continue
		}
		s, err := scalarString(raw)
		if err != nil {
			return PalletRecord{}, apperrors.MalformedPayloadf("label field %s: %v", fe.field, err)
		}
		values[fe.field] = s
	}

	weight, ok := values["weight"]
	if !ok {
		weight = RoundWeight(nil)
	}

	return PalletRecord{
		ID:             values["id"],
		Name:           values["name"],
		Batch:          values["batch"],
		ProductionDate: NormalizeDate(values["productionDate"]),
		ExpiryDate:     NormalizeDate(values["expiryDate"]),
		Weight:         weight,
		Notes:          FlattenNotes(values["notes"]),
	}, nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case bool:
		return strconv.FormatBool(t), nil
	case map[string]any:
		return "", fmt.Errorf("expected a scalar, got an object")
	case []any:
		return "", fmt.Errorf("expected a scalar, got an array")
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
