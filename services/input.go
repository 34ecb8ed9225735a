package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// NullableString tells an absent JSON key apart from an explicit null.
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Valid = false
		return nil
	}
	n.Valid = true
	return json.Unmarshal(b, &n.Value)
}

// NullableFloat tells an absent JSON key apart from an explicit null.
type NullableFloat struct {
	Set   bool
	Valid bool
	Value float64
}

func (n *NullableFloat) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Valid = false
		return nil
	}
	n.Valid = true
	return json.Unmarshal(b, &n.Value)
}

func checkRequired(v *ValidationError, field string, s *string, partial bool) {
	if s == nil {
		if !partial {
			v.Add(field, "This field is required.")
		}
		return
	}
	if strings.TrimSpace(*s) == "" {
		v.Add(field, "This field may not be blank.")
	}
}

func checkMaxLen(v *ValidationError, field string, s *string, max int) {
	if s != nil && utf8.RuneCountInString(*s) > max {
		v.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

func checkDate(v *ValidationError, field, s string) (datatypes.Date, bool) {
	d, err := ParseDate(s)
	if err != nil {
		v.Add(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		return datatypes.Date{}, false
	}
	return d, true
}
