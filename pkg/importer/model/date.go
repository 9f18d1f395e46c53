package model

import (
	"encoding/json"
	"time"
)

// Date is a calendar date without a time component. Always UTC.
type Date struct {
	timeVal time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{
		timeVal: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func NewDateFromString(s string) (Date, error) {
	ts, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{timeVal: ts}, nil
}

func (d Date) GetTime() time.Time {
	return d.timeVal
}

func (d Date) String() string {
	return d.timeVal.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	newDate, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = newDate
	return nil
}
