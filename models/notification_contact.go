package models

import (
	"time"
)

// NotificationContact is the email a doctor opted in to receive schedule
// notifications on. Doctor identity itself lives in the profile service;
// only the opaque id is kept here.
type NotificationContact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DoctorID  string    `json:"doctorId" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
