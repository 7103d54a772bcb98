package label

import (
	"fmt"
	"strings"
)

var fieldEscaper = strings.NewReplacer(`\`, `\5C`, "^", `\5E`, "~", `\7E`)

// escapeField hex-escapes ZPL control characters. Field data is always
// emitted after ^FH\ so the printer decodes the escapes.
func escapeField(s string) string {
	return fieldEscaper.Replace(s)
}

func textField(x, y, height int, text string) string {
	return fmt.Sprintf(`^FO%d,%d^A0N,%d,%d^FH\^FD%s^FS`, x, y, height, height, escapeField(text))
}

// renderZPL lays out a pallet record on a 4x6 inch label at 203 dpi.
func renderZPL(r PalletRecord) string {
	lines := []string{
		"^XA",
		"^CI28",
		"^PW800",
		"^LL1200",
		textField(40, 40, 60, r.Name),
		`^FO40,130^BY3^BCN,120,Y,N,N^FH\^FD` + escapeField(r.ID) + "^FS",
		textField(40, 320, 40, "Partia: "+r.Batch),
		textField(40, 380, 40, "Data produkcji: "+r.ProductionDate),
		textField(40, 440, 40, "Data ważności: "+r.ExpiryDate),
		textField(40, 500, 40, "Waga: "+r.Weight+" kg"),
	}
	if r.Notes != "" {
		lines = append(lines, `^FO40,580^A0N,30,30^FB720,6,0,L^FH\^FDUwagi: `+escapeField(r.Notes)+"^FS")
	}
	lines = append(lines, "^XZ")
	return strings.Join(lines, "\n")
}
