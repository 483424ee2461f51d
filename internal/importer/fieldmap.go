// Package importer parses order spreadsheets (CSV) into domain orders using
// a declarative field mapping: each logical field has a list of accepted
// column-name synonyms, resolved once per import instead of per-row
// branching. Rows that cannot be parsed are rejected individually; an import
// never fails because of one bad row.
package importer

import "strings"

// FieldMap declares the accepted column-name synonyms per logical field.
// Matching is case-insensitive and ignores surrounding whitespace.
type FieldMap struct {
	ID          []string
	Address     []string
	Street      []string
	HouseNumber []string
	PostalCode  []string
	City        []string
	Lat         []string
	Lng         []string
	Weight      []string
	Priority    []string
	WindowStart []string
	WindowEnd   []string
}

// DefaultFieldMap covers the column names seen across customer spreadsheets.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		ID:          []string{"order_id", "orderid", "id"},
		Address:     []string{"address", "full_address", "delivery_address"},
		Street:      []string{"street", "street_name"},
		HouseNumber: []string{"house_number", "housenumber", "house_no"},
		PostalCode:  []string{"postal_code", "postcode", "zip", "zip_code"},
		City:        []string{"city", "town"},
		Lat:         []string{"lat", "latitude"},
		Lng:         []string{"lng", "lon", "longitude"},
		Weight:      []string{"weight", "weight_kg", "weight(kg)"},
		Priority:    []string{"priority", "prio"},
		WindowStart: []string{"window_start", "windowstart", "time_window_start"},
		WindowEnd:   []string{"window_end", "windowend", "time_window_end", "deadline"},
	}
}

// columns holds the resolved header index per field, -1 when absent.
type columns struct {
	id, address, street, houseNumber, postalCode, city int
	lat, lng, weight, priority, windowStart, windowEnd int
}

func (m FieldMap) resolve(header []string) columns {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(synonyms []string) int {
		for _, syn := range synonyms {
			for i, h := range norm {
				if h == syn {
					return i
				}
			}
		}
		return -1
	}

	return columns{
		id:          find(m.ID),
		address:     find(m.Address),
		street:      find(m.Street),
		houseNumber: find(m.HouseNumber),
		postalCode:  find(m.PostalCode),
		city:        find(m.City),
		lat:         find(m.Lat),
		lng:         find(m.Lng),
		weight:      find(m.Weight),
		priority:    find(m.Priority),
		windowStart: find(m.WindowStart),
		windowEnd:   find(m.WindowEnd),
	}
}

// hasLocation reports whether the header exposes any way to locate a row:
// explicit coordinates, a single address column, or address sub-fields.
func (c columns) hasLocation() bool {
	if c.lat >= 0 && c.lng >= 0 {
		return true
	}
	if c.address >= 0 {
		return true
	}
	return c.street >= 0 && c.city >= 0
}
