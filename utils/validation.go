package utils

import (
	"regexp"
	"time"
	"unicode/utf8"

	"lostfound-hub/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const dateLayout = "2006-01-02"

// ParseReportDate parses a submitted date string, preferring the plain
// date-picker format and falling back to RFC3339.
func ParseReportDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ValidateReport checks a submission against the field rules for the given
// variant (models.StatusLost or models.StatusFound). Every rule is applied;
// failures accumulate one message per field, first detected rule winning.
// Returns true and an empty map when the payload is valid.
func ValidateReport(in models.ReportInput, status string) (bool, map[string]string) {
	errs := map[string]string{}

	if n := utf8.RuneCountInString(in.ItemName); n < 3 || n > 100 {
		errs["item_name"] = "Item name must be between 3 and 100 characters."
	}
	if in.Category == "" {
		errs["category"] = "Invalid category."
	}
	if utf8.RuneCountInString(in.LastSeenLocation) < 5 {
		errs["last_seen_location"] = "Last seen location is required and must be descriptive."
	}
	if n := utf8.RuneCountInString(in.Description); n < 10 || n > 500 {
		errs["description"] = "Description must be between 10 and 500 characters."
	}
	if !emailPattern.MatchString(in.ContactEmail) {
		errs["contact_email"] = "Invalid contact email format."
	}

	field := models.DateFieldName(status)
	if raw := in.DateValue(status); raw == "" {
		if status == models.StatusFound {
			errs[field] = "Date found is required."
		} else {
			errs[field] = "Date lost is required."
		}
	} else if t, err := ParseReportDate(raw); err != nil || afterToday(t) {
		errs[field] = "Invalid or future date provided."
	}

	return len(errs) == 0, errs
}

// afterToday reports whether t falls on a later calendar day than the
// server's current day, so a report dated today is still accepted.
func afterToday(t time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.After(today)
}
