package testutil

import "maps"

// PalletRecordBuilder builds the structured label payloads the warehouse UI sends.
type PalletRecordBuilder struct {
	fields map[string]any
}

// NewPalletRecord starts from a complete, valid pallet.
func NewPalletRecord() *PalletRecordBuilder {
	return &PalletRecordBuilder{fields: map[string]any{
		"palletId":       "PAL-000123",
		"productName":    "Mleko UHT 3,2%",
		"batchNumber":    "L2405",
		"productionDate": "2024-05-01T06:30:00",
		"expiryDate":     "2024-08-01",
		"weight":         642.4,
		"notes":          "",
	}}
}

// With sets an arbitrary field.
func (b *PalletRecordBuilder) With(key string, value any) *PalletRecordBuilder {
	b.fields[key] = value
	return b
}

// Without removes a field.
func (b *PalletRecordBuilder) Without(key string) *PalletRecordBuilder {
	delete(b.fields, key)
	return b
}

// Build returns a copy of the record.
func (b *PalletRecordBuilder) Build() map[string]any {
	return maps.Clone(b.fields)
}
