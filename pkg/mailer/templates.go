package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "layout-start"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<div style="background: #2563eb; color: #fff; padding: 20px; text-align: center;"><h1>HealthCare+</h1></div>
<div style="padding: 30px; background: #f9fafb;">{{end}}
{{define "layout-end"}}</div></div>{{end}}

{{define "verification"}}{{template "layout-start"}}
<h2>Hello {{.Name}},</h2>
<p>Thank you for registering. Please verify your email address to activate your account.</p>
<p style="text-align: center; margin: 30px 0;"><a href="{{.Link}}" style="background: #2563eb; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Verify Email</a></p>
<p>This link expires in {{.Expiry}}.</p>
{{template "layout-end"}}{{end}}

{{define "password_reset"}}{{template "layout-start"}}
<h2>Hello {{.Name}},</h2>
<p>We received a request to reset your password.</p>
<p style="text-align: center; margin: 30px 0;"><a href="{{.Link}}" style="background: #dc2626; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a></p>
<p>This link expires in {{.Expiry}}. If you did not request a reset, you can ignore this email.</p>
{{template "layout-end"}}{{end}}

{{define "appointment_confirmation"}}{{template "layout-start"}}
<h2>Hello {{.PatientName}},</h2>
<p>Your appointment has been booked.</p>
<table style="width: 100%; border-collapse: collapse;">
<tr><td><strong>Doctor</strong></td><td>Dr. {{.DoctorName}}</td></tr>
<tr><td><strong>Specialty</strong></td><td>{{.Specialty}}</td></tr>
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
<tr><td><strong>Type</strong></td><td>{{.Type}}</td></tr>
<tr><td><strong>Fee</strong></td><td>{{printf "%.2f" .Amount}}</td></tr>
</table>
<p>Free cancellation is available up to 24 hours before the appointment.</p>
{{template "layout-end"}}{{end}}

{{define "appointment_cancelled"}}{{template "layout-start"}}
<h2>Hello {{.PatientName}},</h2>
<p>Your appointment with Dr. {{.DoctorName}} on {{.Date}} at {{.Time}} has been cancelled.</p>
{{if gt .Fee 0.0}}<p>A cancellation fee of {{printf "%.2f" .Fee}} applies. Refund amount: {{printf "%.2f" .Refund}}.</p>{{else}}<p>No cancellation fee applies.</p>{{end}}
{{template "layout-end"}}{{end}}
`))

type LinkData struct {
	Name   string
	Link   string
	Expiry string
}

type AppointmentData struct {
	PatientName string
	DoctorName  string
	Specialty   string
	Date        string
	Time        string
	Type        string
	Amount      float64
	Fee         float64
	Refund      float64
}

func VerificationEmail(to string, data LinkData) (Message, error) {
	return render(to, "Verify your email address", "verification", data)
}

func PasswordResetEmail(to string, data LinkData) (Message, error) {
	return render(to, "Password reset request", "password_reset", data)
}

func AppointmentConfirmationEmail(to string, data AppointmentData) (Message, error) {
	return render(to, "Appointment confirmation", "appointment_confirmation", data)
}

func AppointmentCancelledEmail(to string, data AppointmentData) (Message, error) {
	return render(to, "Appointment cancelled", "appointment_cancelled", data)
}

func render(to, subject, name string, data any) (Message, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Message{}, fmt.Errorf("render %s email: %w", name, err)
	}
	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}
