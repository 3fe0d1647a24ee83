package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/docspot/availability-service/db"
	"github.com/docspot/availability-service/models"
	"github.com/docspot/availability-service/utils"
)

type notificationContactRequest struct {
	DoctorID string `json:"doctorId"`
	Email    string `json:"email"`
}

// UpsertNotificationContact registers or replaces the email a doctor wants
// schedule notifications delivered to.
func UpsertNotificationContact(c *fiber.Ctx) error {
	var req notificationContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.DoctorID == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "doctorId and email are required",
			Error:   "missing doctorId or email",
		})
	}

	var contact models.NotificationContact
	err := db.DB.Where("doctor_id = ?", req.DoctorID).First(&contact).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		contact = models.NotificationContact{DoctorID: req.DoctorID, Email: req.Email}
		if err := db.DB.Create(&contact).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to register notification contact",
				Error:   err.Error(),
			})
		}
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to look up notification contact",
			Error:   err.Error(),
		})
	default:
		contact.Email = req.Email
		if err := db.DB.Save(&contact).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update notification contact",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(contact)
}

// notifyScheduleChange emails the doctor's registered contact after an edit.
// Doctors without a contact get nothing; delivery problems are logged and
// never surfaced to the caller.
func notifyScheduleChange(record models.DoctorAvailability, hours workingHours) {
	var contact models.NotificationContact
	if err := db.DB.Where("doctor_id = ?", record.DoctorID).First(&contact).Error; err != nil {
		return
	}

	subject := fmt.Sprintf("Schedule updated for %s", record.Date)
	body := fmt.Sprintf(`
		<p>Your availability for <strong>%s</strong> was regenerated.</p>
		<p><strong>New window:</strong> %s to %s (%d slots)</p>
		<p>Any slots you had switched off earlier are offered again. Use the
		schedule editor to switch individual times back off.</p>
	`, record.Date, hours.Start, hours.End, len(record.Slots))

	if err := utils.SendEmail(contact.Email, subject, body); err != nil {
		log.Printf("Failed to send schedule-change email for doctor %s: %v", record.DoctorID, err)
	}
}
