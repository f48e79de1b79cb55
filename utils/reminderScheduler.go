package utils

import (
	"fmt"
	"log"
	"time"

	"seb/config"
	"seb/database"
	"seb/models"
	courseModels "seb/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendLearningReminders creates a reminder notification (and email, when an
// address is on file) for parents whose active enrollments have been idle
// for the configured number of days.
func sendLearningReminders() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.ReminderIdleDays)

	var enrollments []courseModels.Enrollment
	if err := db.Where("status = ? AND updated_at < ?", courseModels.EnrollmentActive, cutoff).
		Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching idle enrollments: " + err.Error())
		return
	}

	for _, enrollment := range enrollments {
		var crs courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&crs).Error; err != nil {
			continue
		}

		// One reminder per enrollment per idle window
		var recent int64
		db.Model(&models.Notification{}).
			Where("parent_id = ? AND type = ? AND created_at > ?", enrollment.ParentID, models.NotificationReminder, cutoff).
			Count(&recent)
		if recent > 0 {
			continue
		}

		notification := models.Notification{
			ParentID: enrollment.ParentID,
			Type:     models.NotificationReminder,
			Title:    "Continúa aprendiendo",
			Message:  fmt.Sprintf("Tu curso \"%s\" te espera. ¡Retoma donde lo dejaste!", crs.Title),
		}
		if err := db.Create(&notification).Error; err != nil {
			logScheduler("Error creating reminder: " + err.Error())
			continue
		}

		var parent models.Parent
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.ParentID, false).First(&parent).Error; err == nil && parent.Email != "" {
			if err := SendEmail([]string{parent.Email}, notification.Title, notification.Message); err != nil {
				logScheduler("Error sending reminder email: " + err.Error())
			}
		}
	}

	logScheduler(fmt.Sprintf("Processed %d idle enrollments", len(enrollments)))
}

// StartReminderScheduler runs the learning reminder job every day at 10:00
func StartReminderScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 10 * * *", sendLearningReminders); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}

	c.Start()
	logScheduler("Reminder scheduler started")
}
