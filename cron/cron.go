package cron

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/docspot/availability-service/db"
	"github.com/docspot/availability-service/models"
	"github.com/docspot/availability-service/utils"
)

// StartCronJobs initializes and starts the cron scheduler for the nightly
// availability digest
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()

	spec := os.Getenv("DIGEST_CRON")
	if spec == "" {
		spec = "0 18 * * *" // Evening, service timezone is handled per-date
	}
	_, err := c.AddFunc(spec, sendAvailabilityDigests)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for availability digests")
}

// sendAvailabilityDigests emails each registered doctor a summary of
// tomorrow's open slots
func sendAvailabilityDigests() {
	tomorrow := utils.Tomorrow()

	var contacts []models.NotificationContact
	if err := db.DB.Find(&contacts).Error; err != nil {
		log.Printf("Error fetching notification contacts: %v", err)
		return
	}

	fmt.Printf("Found %d notification contacts for digests\n", len(contacts))

	for _, contact := range contacts {
		var record models.DoctorAvailability
		err := db.DB.Where("doctor_id = ? AND date = ?", contact.DoctorID, tomorrow).
			First(&record).Error
		if err != nil {
			continue // No slot-set for tomorrow, nothing to digest
		}

		times := []string{}
		for _, s := range record.Slots {
			if s.IsActive && !s.Booked {
				times = append(times, s.Time)
			}
		}
		if len(times) == 0 {
			continue
		}

		if err := sendDigestEmail(contact.Email, tomorrow, times); err != nil {
			log.Printf("Failed to send digest for doctor %s: %v", contact.DoctorID, err)
			continue
		}
		log.Printf("Sent availability digest for doctor %s to %s", contact.DoctorID, contact.Email)
	}
}

// sendDigestEmail constructs and sends the digest email
func sendDigestEmail(to, date string, times []string) error {
	subject := fmt.Sprintf("Open slots for %s", date)
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>You still have <strong>%d</strong> open appointment slots tomorrow (%s):</p>
		<p>%s</p>
		<p>Slots already booked by patients are not listed. Use the schedule
		editor if you want to switch any of these off.</p>
		<p>Best regards,</p>
		<p>Your Availability Team</p>
	`, len(times), date, strings.Join(times, ", "))

	return utils.SendEmail(to, subject, body)
}
