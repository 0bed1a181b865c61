package mailer

import (
	"context"
	"strings"
	"testing"

	"healthcare-booking/pkg/utils"

	"go.uber.org/zap/zaptest"
)

func TestVerificationEmail(t *testing.T) {
	msg, err := VerificationEmail("ana@example.com", LinkData{
		Name:   "Ana <b>",
		Link:   "http://localhost:3000/verify-email/abc",
		Expiry: "24 hours",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.To != "ana@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.HTML, "http://localhost:3000/verify-email/abc") {
		t.Error("link missing from body")
	}
	if strings.Contains(msg.HTML, "Ana <b>") {
		t.Error("name was not escaped")
	}
}

func TestAppointmentCancelledEmail(t *testing.T) {
	tests := []struct {
		name string
		fee  float64
		want string
	}{
		{name: "free", fee: 0, want: "No cancellation fee applies"},
		{name: "charged", fee: 300, want: "A cancellation fee of 300.00 applies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := AppointmentCancelledEmail("p@example.com", AppointmentData{
				PatientName: "Pat",
				DoctorName:  "House",
				Date:        "2026-01-02",
				Time:        "10:00",
				Fee:         tt.fee,
				Refund:      600 - tt.fee,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(msg.HTML, tt.want) {
				t.Errorf("body does not contain %q", tt.want)
			}
		})
	}
}

func TestNewWithoutHostLogsOnly(t *testing.T) {
	sender := New(utils.EmailConfig{}, zaptest.NewLogger(t))
	if _, ok := sender.(*logSender); !ok {
		t.Fatalf("expected log sender, got %T", sender)
	}
	if err := sender.Send(context.Background(), Message{To: "x@example.com", Subject: "s"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
