package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

// ErrNoLocationColumns is returned when the header offers no way to locate
// rows at all; this is a boundary failure, not a per-row one.
var ErrNoLocationColumns = errors.New("import: no address or coordinate columns found")

// RejectedRow reports one spreadsheet row dropped with its 1-based line
// number and the reason.
type RejectedRow struct {
	Line   int
	Reason string
}

// Result is a best-effort import: parsed orders plus per-row rejections.
type Result struct {
	Orders   []domain.Order
	Rejected []RejectedRow
}

// OrderImporter parses CSV order rows. When a row has no coordinates the
// configured geocoder resolves the assembled address; a geocoding failure
// rejects only that row.
type OrderImporter struct {
	Fields   FieldMap
	Geocoder ports.Geocoder
}

func NewOrderImporter(geocoder ports.Geocoder) *OrderImporter {
	return &OrderImporter{Fields: DefaultFieldMap(), Geocoder: geocoder}
}

func (imp *OrderImporter) ImportOrders(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("import: read header: %w", err)
	}

	cols := imp.Fields.resolve(header)
	if !cols.hasLocation() {
		return nil, ErrNoLocationColumns
	}

	res := &Result{}
	seq := 1
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Rejected = append(res.Rejected, RejectedRow{Line: line, Reason: "malformed csv row"})
			continue
		}

		order, reason := imp.parseRow(ctx, cols, row, &seq)
		if reason != "" {
			res.Rejected = append(res.Rejected, RejectedRow{Line: line, Reason: reason})
			continue
		}
		res.Orders = append(res.Orders, order)
	}
	return res, nil
}

// parseRow builds one order; a non-empty reason rejects the row.
func (imp *OrderImporter) parseRow(ctx context.Context, cols columns, row []string, seq *int) (domain.Order, string) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	o := domain.Order{
		ID:          get(cols.id),
		Priority:    domain.NormalizePriority(get(cols.priority)),
		WindowStart: domain.NoWindow,
		WindowEnd:   domain.NoWindow,
	}
	if o.ID == "" {
		o.ID = fmt.Sprintf("ORD%04d", *seq)
	}
	*seq++

	if w := get(cols.weight); w != "" {
		// European spreadsheets use a decimal comma.
		weight, err := strconv.ParseFloat(strings.ReplaceAll(w, ",", "."), 64)
		if err != nil {
			return o, fmt.Sprintf("invalid weight %q", w)
		}
		if weight < 0 {
			return o, "negative weight"
		}
		o.WeightKG = weight
	}

	if ws := get(cols.windowStart); ws != "" {
		m, err := parseMinutes(ws)
		if err != nil {
			return o, fmt.Sprintf("invalid window start %q", ws)
		}
		o.WindowStart = m
	}
	if we := get(cols.windowEnd); we != "" {
		m, err := parseMinutes(we)
		if err != nil {
			return o, fmt.Sprintf("invalid window end %q", we)
		}
		o.WindowEnd = m
	}

	latStr, lngStr := get(cols.lat), get(cols.lng)
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return o, "malformed coordinate"
		}
		o.Location = domain.Coordinates{Lat: lat, Lng: lng}
		if !o.Location.Valid() {
			return o, "malformed coordinate"
		}
		o.Address = imp.assembleAddress(cols, get)
		return o, ""
	}

	address := imp.assembleAddress(cols, get)
	if address == "" {
		return o, "no address"
	}
	o.Address = address

	if imp.Geocoder == nil {
		return o, "no coordinates and geocoding disabled"
	}
	coords, err := imp.Geocoder.Geocode(ctx, address)
	if err != nil {
		return o, fmt.Sprintf("geocode failed: %v", err)
	}
	o.Location = coords
	return o, ""
}

// assembleAddress prefers a single address column and otherwise combines the
// street/house-number/postal-code/city sub-fields.
func (imp *OrderImporter) assembleAddress(cols columns, get func(int) string) string {
	if a := get(cols.address); a != "" {
		return a
	}

	street := strings.TrimSpace(get(cols.street) + " " + get(cols.houseNumber))
	place := strings.TrimSpace(get(cols.postalCode) + " " + get(cols.city))
	switch {
	case street == "":
		return place
	case place == "":
		return street
	default:
		return street + ", " + place
	}
}

// parseMinutes accepts either a bare minutes-since-midnight integer or an
// HH:MM / HH:MM:SS clock value.
func parseMinutes(s string) (int, error) {
	if !strings.Contains(s, ":") {
		m, err := strconv.Atoi(s)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("invalid minute value %q", s)
		}
		return m, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value out of range %q", s)
	}
	return h*60 + m, nil
}
