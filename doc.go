// Package mtfield parses and builds SWIFT MT field values from a data-driven
// table of field definitions.
//
// Every field tag (20, 32A, 50K, 22F, ...) is described by a validator
// pattern and a parser pattern. The engine compiles the pair once, splits raw
// values into components and writes components back to the wire form:
//
//	f, err := mtfield.Parse("32A", "240101EUR1234,56")
//	if err != nil {
//		return err
//	}
//	amount, _ := f.AsDecimal(3)
//
// The package-level helpers use the embedded registry. Build an Engine with
// WithOverlayFS or WithOverlayDir to add or replace rows.
package mtfield
