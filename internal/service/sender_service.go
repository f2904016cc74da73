package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	"spotsavers/internal/utils"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// NotifyBookingStatus sends the seeker an email and an SMS about a booking
// status change. Delivery is fire-and-forget: failures are logged, never
// surfaced to the request that triggered them.
func (s *SenderService) NotifyBookingStatus(seeker *db.User, booking *db.Booking, space *db.SpaceWithLocation, status string) {
	s.SendBookingEmail(seeker, booking, space, status)
	s.SendBookingSMS(seeker, booking, space, status)
}

func (s *SenderService) SendBookingEmail(seeker *db.User, booking *db.Booking, space *db.SpaceWithLocation, status string) {
	emailData := entities.BookingEmailData{
		SeekerName:    seeker.Name,
		BookingID:     booking.ID,
		Status:        status,
		LocationName:  space.LocationName,
		Address:       space.Address,
		City:          space.City,
		DateFormatted: space.SlotDate.Format("02 Jan 2006"),
		StartTime:     utils.FormatClock(space.StartMinute),
		EndTime:       utils.FormatClock(space.EndMinute),
		VehicleModel:  booking.VehicleModel,
		PlateNumber:   booking.PlateNumber,
		Instruction:   booking.Instruction.String,
		CurrentYear:   time.Now().UTC().Year(),
	}

	emailSubject := fmt.Sprintf("Your Spot Savers booking #%d is %s", emailData.BookingID, status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour parking booking #%d is %s.\n\n"+
			"Booking details:\n"+
			"Parking: %s, %s, %s\n"+
			"Date: %s\n"+
			"Slot: %s - %s\n"+
			"Vehicle: %s (Plate: %s)\n",
		emailData.SeekerName, emailData.BookingID, status,
		emailData.LocationName, emailData.Address, emailData.City,
		emailData.DateFormatted, emailData.StartTime, emailData.EndTime,
		emailData.VehicleModel, emailData.PlateNumber,
	)
	if emailData.Instruction != "" {
		plainTextBody += fmt.Sprintf("\n%s\n", emailData.Instruction)
	}
	plainTextBody += "\nThank you for booking with Spot Savers. Drive safe!"

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Failed to parse booking email template (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
		log.Printf("ALERT: Failed to execute booking email template for booking %d: %v", emailData.BookingID, err)
		return
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): Failed to send email for booking %d: %v", emailData.BookingID, errEmail)
		}
	}(seeker.Email, seeker.Name, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendBookingSMS(seeker *db.User, booking *db.Booking, space *db.SpaceWithLocation, status string) {
	smsMessage := fmt.Sprintf("Spot Savers: Your booking #%d has been %s!\nSlot: %s %s-%s.\nMore details in your email.",
		booking.ID, status,
		space.SlotDate.Format("02/01"),
		utils.FormatClock(space.StartMinute),
		utils.FormatClock(space.EndMinute),
	)

	go func(toPhone, message string) {
		if errSMS := SendSMS(toPhone, message); errSMS != nil {
			log.Printf("ALERT (async): Booking %d is %s, but the confirmation SMS to %s failed: %v", booking.ID, status, toPhone, errSMS)
		}
	}(seeker.Phone, smsMessage)
}
