// flex_decimal.go
//
// A recipe sharing data service on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of recipedb.
// recipedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// recipedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with recipedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexDecimal is a nullable decimal that can be unmarshaled from either a JSON
// number or a JSON string. Null and the empty string both unmarshal to an
// invalid (NULL) value.
type FlexDecimal struct {
	decimal.NullDecimal
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	f.Valid = false
	f.Decimal = decimal.Zero

	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}

	// Unwrap strings, numbers are parsed from their literal text
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("FlexDecimal: %w", err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("FlexDecimal: invalid decimal %q: %w", raw, err)
	}
	f.Decimal = d
	f.Valid = true
	return nil
}

// NullDecimalValue returns the value suitable for a model column
func (f FlexDecimal) NullDecimalValue() decimal.NullDecimal {
	return f.NullDecimal
}

// NewFlexDecimal parses s, mainly for tests and form values
func NewFlexDecimal(s string) (FlexDecimal, error) {
	var f FlexDecimal
	if err := f.UnmarshalJSON([]byte(fmt.Sprintf("%q", s))); err != nil {
		return f, err
	}
	return f, nil
}
