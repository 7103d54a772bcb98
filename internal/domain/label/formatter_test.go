package label

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

func newTestFormatter(t *testing.T, opts Options) *Formatter {
	t.Helper()
	f, err := NewFormatter(opts)
	require.NoError(t, err)
	return f
}

func TestFormatter_RawPassesThrough(t *testing.T) {
	f := newTestFormatter(t, Options{FoldDiacritics: true})
	raw := "^XA^FO10,10^FDŁódź ^ ~^FS^XZ"

	out, err := f.Format(printing.RawPayload(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestFormatter_RecordLayout(t *testing.T) {
	f := newTestFormatter(t, Options{})
	payload := printing.RecordPayload(map[string]any{
		"palletId":       "PAL-0001",
		"productName":    "Mleko 3,2%",
		"batchNumber":    "B-17",
		"productionDate": "2024-05-01T10:00:00",
		"expiryDate":     "2024-05-15",
		"weight":         12.7,
		"notes":          "Chłodzić\r\ndo 4°C",
	})

	out, err := f.Format(payload)
	require.NoError(t, err)

	want := strings.Join([]string{
		"^XA",
		"^CI28",
		"^PW800",
		"^LL1200",
		`^FO40,40^A0N,60,60^FH\^FDMleko 3,2%^FS`,
		`^FO40,130^BY3^BCN,120,Y,N,N^FH\^FDPAL-0001^FS`,
		`^FO40,320^A0N,40,40^FH\^FDPartia: B-17^FS`,
		`^FO40,380^A0N,40,40^FH\^FDData produkcji: 2024-05-01^FS`,
		`^FO40,440^A0N,40,40^FH\^FDData ważności: 2024-05-15^FS`,
		`^FO40,500^A0N,40,40^FH\^FDWaga: 13 kg^FS`,
		`^FO40,580^A0N,30,30^FB720,6,0,L^FH\^FDUwagi: Chłodzić do 4°C^FS`,
		"^XZ",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatter_IsDeterministic(t *testing.T) {
	f := newTestFormatter(t, Options{})
	record := map[string]any{"id": "X", "name": "Ser", "weight": "7,5", "notes": "a\nb"}

	first, err := f.Format(printing.RecordPayload(record))
	require.NoError(t, err)
	for range 5 {
		again, err := f.Format(printing.RecordPayload(record))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFormatter_AliasesAndMissingFields(t *testing.T) {
	f := newTestFormatter(t, Options{})
	out, err := f.Format(printing.RecordPayload(map[string]any{
		"id":      "P-9",
		"product": map[string]any{"name": "Kefir"},
	}))
	require.NoError(t, err)

	assert.Contains(t, out, `^FDKefir^FS`)
	assert.Contains(t, out, `^FDP-9^FS`)
	assert.Contains(t, out, `^FDPartia: ^FS`)
	assert.Contains(t, out, `^FDWaga: 0 kg^FS`)
	assert.NotContains(t, out, "Uwagi:")
}

func TestFormatter_EscapesControlCharacters(t *testing.T) {
	f := newTestFormatter(t, Options{})
	out, err := f.Format(printing.RecordPayload(map[string]any{
		"palletId":    "A^B",
		"productName": `^XZ~JA\`,
	}))
	require.NoError(t, err)

	assert.Contains(t, out, `^FD\5EXZ\7EJA\5C^FS`)
	assert.Contains(t, out, `^FDA\5EB^FS`)
	assert.Equal(t, 1, strings.Count(out, "^XZ"))
}

func TestFormatter_FoldDiacritics(t *testing.T) {
	f := newTestFormatter(t, Options{FoldDiacritics: true})
	out, err := f.Format(printing.RecordPayload(map[string]any{
		"productName": "Masło śmietankowe",
		"notes":       "Łódź",
	}))
	require.NoError(t, err)

	assert.Contains(t, out, "Maslo smietankowe")
	assert.Contains(t, out, "Data waznosci:")
	assert.Contains(t, out, "Uwagi: Lodz")
}

func TestFormatter_Malformed(t *testing.T) {
	f := newTestFormatter(t, Options{})

	tests := []struct {
		name    string
		payload printing.Payload
	}{
		{name: "empty", payload: printing.Payload{}},
		{name: "empty raw", payload: printing.RawPayload("")},
		{name: "object in scalar field", payload: printing.RecordPayload(map[string]any{
			"productName": map[string]any{"pl": "Mleko"},
		})},
		{name: "array in scalar field", payload: printing.RecordPayload(map[string]any{
			"notes": []any{"a", "b"},
		})},
		{name: "object in weight", payload: printing.RecordPayload(map[string]any{
			"palletId": "P1",
			"weight":   map[string]any{"kg": 5},
		})},
		{name: "array in weight", payload: printing.RecordPayload(map[string]any{
			"palletId": "P1",
			"weight":   []any{5},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Format(tt.payload)
			require.Error(t, err)
			assert.True(t, apperrors.IsMalformedPayload(err), "got %v", err)
		})
	}
}

func TestNewFormatter_InvalidExpression(t *testing.T) {
	fields := DefaultFieldExpressions()
	fields.Name = "productName ||"

	_, err := NewFormatter(Options{Fields: &fields})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label field name")
}

func TestNewFormatter_CustomExpressions(t *testing.T) {
	fields := FieldExpressions{ID: "sscc", Name: "opis.nazwa", Weight: "masa"}
	f := newTestFormatter(t, Options{Fields: &fields})

	out, err := f.Format(printing.RecordPayload(map[string]any{
		"sscc": "00012345",
		"opis": map[string]any{"nazwa": "Twaróg"},
		"masa": 2.5,
	}))
	require.NoError(t, err)
	assert.Contains(t, out, `^FDTwaróg^FS`)
	assert.Contains(t, out, `^FD00012345^FS`)
	assert.Contains(t, out, `Waga: 3 kg`)
}
