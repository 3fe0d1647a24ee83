package controllers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/docspot/availability-service/db"
	"github.com/docspot/availability-service/models"
	"github.com/docspot/availability-service/redis"
	"github.com/docspot/availability-service/utils"
)

type workingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type createTimeSlotRequest struct {
	DoctorID     string       `json:"doctorId"`
	Dates        []string     `json:"dates"`
	WorkingHours workingHours `json:"workingHours"`
}

type editTimeSlotRequest struct {
	DoctorID     string       `json:"doctorId"`
	Date         string       `json:"date"`
	WorkingHours workingHours `json:"workingHours"`
}

type updateSlotRequest struct {
	Time     string `json:"time"`
	IsActive bool   `json:"isActive"`
}

type markSlotRequest struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// CreateTimeSlot godoc
// @Summary Create slot-sets for a doctor
// @Description Generates slots from the working-hours window for each date in the batch. Dates that already have a slot-set are skipped, never overwritten, and reported in alreadyExistDates.
// @Tags availability
// @Accept json
// @Produce json
// @Param request body createTimeSlotRequest true "Doctor, dates and working hours"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /createTimeSlot [post]
func CreateTimeSlot(c *fiber.Ctx) error {
	var req createTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.DoctorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "doctorId is required",
			Error:   "missing doctorId",
		})
	}
	if len(req.Dates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "At least one date is required",
			Error:   "empty dates",
		})
	}

	dates := make([]string, 0, len(req.Dates))
	for _, d := range req.Dates {
		normalized, err := utils.NormalizeDate(d)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: fmt.Sprintf("Invalid date %q, use YYYY-MM-DD", d),
				Error:   err.Error(),
			})
		}
		dates = append(dates, normalized)
	}

	slots, err := utils.GenerateSlots(req.WorkingHours.Start, req.WorkingHours.End, utils.SlotGranularity())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid working hours",
			Error:   err.Error(),
		})
	}

	createdDates := []string{}
	alreadyExistDates := []string{}

	// Each date is inserted independently; the unique index on
	// (doctor_id, date) decides the winner when creates race.
	for _, date := range dates {
		record := models.DoctorAvailability{
			DoctorID: req.DoctorID,
			Date:     date,
			Slots:    slots,
		}
		err := db.DB.Create(&record).Error
		switch {
		case err == nil:
			createdDates = append(createdDates, date)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			alreadyExistDates = append(alreadyExistDates, date)
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create time slots",
				Error:   err.Error(),
			})
		}
	}

	if len(createdDates) > 0 {
		redis.InvalidateActiveSlots(req.DoctorID)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"createdDates":      createdDates,
		"alreadyExistDates": alreadyExistDates,
		"message": fmt.Sprintf("Created slots for %d date(s), %d already existed",
			len(createdDates), len(alreadyExistDates)),
	})
}

// GetTimeSlots returns every slot-set for a doctor, oldest date first.
// Used by the doctor-facing schedule editor.
func GetTimeSlots(c *fiber.Ctx) error {
	doctorID := c.Params("doctorId")

	var records []models.DoctorAvailability
	if err := db.DB.Where("doctor_id = ?", doctorID).Order("date asc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch time slots",
			Error:   err.Error(),
		})
	}
	return c.JSON(records)
}

// EditTimeSlot regenerates the slot-set of one existing date from revised
// working hours. Activation state from the old set is discarded; booked
// times that reappear in the new window stay booked so an edit cannot
// silently release a patient's appointment.
func EditTimeSlot(c *fiber.Ctx) error {
	var req editTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.DoctorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "doctorId is required",
			Error:   "missing doctorId",
		})
	}
	date, err := utils.NormalizeDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Invalid date %q, use YYYY-MM-DD", req.Date),
			Error:   err.Error(),
		})
	}

	var record models.DoctorAvailability
	if err := db.DB.Where("doctor_id = ? AND date = ?", req.DoctorID, date).First(&record).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "No slot-set found for this date",
			Error:   err.Error(),
		})
	}

	slots, err := utils.GenerateSlots(req.WorkingHours.Start, req.WorkingHours.End, utils.SlotGranularity())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid working hours",
			Error:   err.Error(),
		})
	}

	// Carry bookings across the regeneration
	booked := make(map[string]bool)
	for _, s := range record.Slots {
		if s.Booked {
			booked[s.Time] = true
		}
	}
	for i := range slots {
		if booked[slots[i].Time] {
			slots[i].Booked = true
		}
	}

	record.Slots = slots
	if err := db.DB.Save(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update time slots",
			Error:   err.Error(),
		})
	}

	redis.InvalidateActiveSlots(req.DoctorID)
	notifyScheduleChange(record, req.WorkingHours)

	return c.JSON(record)
}

// UpdateSlot flips the offered flag of a single slot in place. Order and
// every other slot in the record are left untouched.
func UpdateSlot(c *fiber.Ctx) error {
	id := c.Params("id")
	var record models.DoctorAvailability
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Slot-set not found",
			Error:   err.Error(),
		})
	}

	var req updateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var slot *models.Slot
	for i := range record.Slots {
		if record.Slots[i].Time == req.Time {
			record.Slots[i].IsActive = req.IsActive
			slot = &record.Slots[i]
			break
		}
	}
	if slot == nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("No slot at %s in this slot-set", req.Time),
			Error:   "slot not found",
		})
	}

	if err := db.DB.Model(&record).Update("slots", record.Slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update slot",
			Error:   err.Error(),
		})
	}

	redis.InvalidateActiveSlots(record.DoctorID)
	return c.JSON(slot)
}

// MarkSlot records booking consumption of a single slot. This is the write
// interface the booking subsystem uses; the schedule editor never calls it.
func MarkSlot(c *fiber.Ctx) error {
	id := c.Params("id")
	var record models.DoctorAvailability
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Slot-set not found",
			Error:   err.Error(),
		})
	}

	var req markSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var slot *models.Slot
	for i := range record.Slots {
		if record.Slots[i].Time == req.Time {
			slot = &record.Slots[i]
			break
		}
	}
	if slot == nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("No slot at %s in this slot-set", req.Time),
			Error:   "slot not found",
		})
	}

	if req.Booked {
		if !slot.IsActive {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Slot is not offered for booking",
				Error:   "slot inactive",
			})
		}
		if slot.Booked {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Slot is already booked",
				Error:   "slot booked",
			})
		}
	}
	slot.Booked = req.Booked

	if err := db.DB.Model(&record).Update("slots", record.Slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update slot",
			Error:   err.Error(),
		})
	}

	redis.InvalidateActiveSlots(record.DoctorID)
	return c.JSON(slot)
}

// GetActiveSlots returns the patient-facing booking view: current or future
// dates only, offered and unbooked slots only. Slot-sets left empty by the
// filter are omitted. Responses are cached per doctor.
func GetActiveSlots(c *fiber.Ctx) error {
	doctorID := c.Params("doctorId")

	if payload, ok := redis.GetActiveSlots(doctorID); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	var records []models.DoctorAvailability
	if err := db.DB.Where("doctor_id = ? AND date >= ?", doctorID, utils.Today()).
		Order("date asc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch active slots",
			Error:   err.Error(),
		})
	}

	active := make([]models.DoctorAvailability, 0, len(records))
	for _, record := range records {
		open := models.SlotList{}
		for _, s := range record.Slots {
			if s.IsActive && !s.Booked {
				open = append(open, s)
			}
		}
		if len(open) == 0 {
			continue
		}
		record.Slots = open
		active = append(active, record)
	}

	if payload, err := json.Marshal(active); err == nil {
		redis.SetActiveSlots(doctorID, payload)
	}
	return c.JSON(active)
}
