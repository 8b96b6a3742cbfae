package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casedesk/casedesk/storage/model"
)

// now is replaced in tests
var now = time.Now

// serialEpoch is day zero of spreadsheet serial dates
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is the serial number of 9999-12-31
const maxSerial = 2958465

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// splitList splits a comma separated cell, trimming each part and dropping
// empty ones.
func splitList(v string) []string {
	parts := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// parseSellerID converts a cell into a non-negative seller id. Decimal values
// are truncated. ok is false if a non-blank value could not be used.
func parseSellerID(v string) (id int64, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		if i < 0 {
			return 0, false
		}
		return i, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseFeedback is true iff the cell starts with "y", ignoring case.
func parseFeedback(v string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "y")
}

// parseCSAT converts a cell into a CSAT score rounded to one decimal.
// Blank cells are absent; ok is false if a non-blank value could not be used.
func parseCSAT(v string) (score decimal.NullDecimal, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	d = d.Round(1)
	if !model.CSATInRange(d) {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// parseDate converts a cell into an ISO calendar date. It accepts common
// date layouts and serial numbers. Blank cells are absent; ok is false if a
// non-blank value could not be used.
func parseDate(v string) (date *string, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, true
	}
	if t, isSerial := fromSerial(v); isSerial {
		d := t.Format(dateLayout)
		return &d, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d := t.Format(dateLayout)
			return &d, true
		}
	}
	return nil, false
}

// parseTimestamp converts a cell into a point in time. Values without a zone
// are read as UTC. ok is false if the cell was blank or could not be parsed,
// in which case the current time is returned.
func parseTimestamp(v string) (t time.Time, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return now().UTC(), false
	}
	if t, isSerial := fromSerial(v); isSerial {
		return t, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return now().UTC(), false
}

// fromSerial reads a spreadsheet serial number. The fraction is the time of
// day, rounded to microseconds.
func fromSerial(v string) (time.Time, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > maxSerial {
		return time.Time{}, false
	}
	days := math.Floor(f)
	t := serialEpoch.AddDate(0, 0, int(days))
	micros := math.Round((f - days) * float64(24*time.Hour/time.Microsecond))
	return t.Add(time.Duration(micros) * time.Microsecond), true
}
