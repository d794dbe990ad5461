package booking

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"gopkg.in/gomail.v2"
)

// sendBookingEmail sends the appointment confirmation. When SMTP is not
// configured the email is skipped without failing the booking.
func sendBookingEmail(booking models.Booking) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" {
		return nil
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", booking.Email)
	m.SetHeader("Subject", fmt.Sprintf("Your appointment for %s is confirmed", booking.Treatment))
	m.SetBody("text/html", fmt.Sprintf(`
		<h3>Your appointment is confirmed</h3>
		<p>Please visit us on %s at %s.</p>
		<p>Thanks from Doctors Portal.</p>
	`, booking.AppointmentDate, booking.Slot))

	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
