package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Slot is a single offered appointment time within a date.
// IsActive tracks whether the doctor is offering the time; Booked tracks
// whether a patient has taken it. The two flags are mutated independently
// so a doctor toggling a time off never clears a patient's booking.
type Slot struct {
	Time     string `json:"time"` // Format "HH:MM" in 24h
	IsActive bool   `json:"isActive"`
	Booked   bool   `json:"booked"`
}

// SlotList is persisted as a single JSONB column, preserving generation order.
type SlotList []Slot

// Value implements the driver.Valuer interface
func (s SlotList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (s *SlotList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal SlotList: unsupported type %T", value)
	}

	return json.Unmarshal(data, s)
}

// DoctorAvailability is the slot-set one doctor offers on one calendar date.
// Date is a plain "YYYY-MM-DD" string, never a timestamp, so a day picked in
// one timezone cannot shift to a neighbouring day in another. The unique
// index on (doctor_id, date) is what makes concurrent creates safe: two
// racing inserts for the same day cannot both succeed.
type DoctorAvailability struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	DoctorID  string    `json:"doctorId" gorm:"uniqueIndex:idx_doctor_date;not null"`
	Date      string    `json:"date" gorm:"uniqueIndex:idx_doctor_date;not null"` // Format "YYYY-MM-DD"
	Slots     SlotList  `json:"slots" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
