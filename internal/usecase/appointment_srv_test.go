package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/pkg/utils"
)

func strPtr(s string) *string { return &s }

func patientActor(u *entity.User) Actor { return Actor{UserID: u.ID, Role: entity.RolePatient} }

func bookReq(doctor *entity.Doctor, start time.Time, modality entity.Modality) *request.BookAppointmentRequest {
	return &request.BookAppointmentRequest{
		DoctorID: doctor.ID.String(),
		Date:     start.Format(entity.DateLayout),
		Time:     start.Format(entity.TimeLayout),
		Type:     string(modality),
		Reason:   "Chest pain",
	}
}

func TestBookPricesByModality(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "pat@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	start := env.clock.Now().Add(48 * time.Hour)

	tests := []struct {
		modality entity.Modality
		offset   time.Duration
		want     float64
	}{
		{entity.ModalityVideo, 0, 600},
		{entity.ModalityInPerson, 30 * time.Minute, 800},
		{entity.ModalityPhone, time.Hour, 800},
	}

	for _, tt := range tests {
		t.Run(string(tt.modality), func(t *testing.T) {
			got, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), bookReq(doctor, start.Add(tt.offset), tt.modality))
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if got.Payment.Amount != tt.want {
				t.Errorf("amount = %v, want %v", got.Payment.Amount, tt.want)
			}
			if got.Status != entity.StatusScheduled || got.Payment.Status != entity.PaymentPending {
				t.Errorf("status = %s/%s, want scheduled/pending", got.Status, got.Payment.Status)
			}
		})
	}
}

func TestBookSameSlotTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	first := env.addUser(t, entity.RolePatient, "a@example.com")
	second := env.addUser(t, entity.RolePatient, "b@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	req := bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo)

	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(first), req); err != nil {
		t.Fatalf("first Book() error = %v", err)
	}
	_, err := env.svc.Appointment.Book(context.Background(), patientActor(second), req)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second Book() error = %v, want ErrConflict", err)
	}
}

func TestBookAfterCancellationFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	req := bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo)

	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), req)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID, &request.CancelAppointmentRequest{}); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), req); err != nil {
		t.Fatalf("rebook error = %v", err)
	}
}

func TestBookRejections(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	_, closed := env.addDoctor(t, "closed@example.com")
	closed.IsAcceptingPatients = false
	if err := env.doctors.Update(context.Background(), closed); err != nil {
		t.Fatal(err)
	}
	now := env.clock.Now()

	tests := []struct {
		name  string
		actor Actor
		req   *request.BookAppointmentRequest
		want  error
	}{
		{
			name:  "unknown doctor",
			actor: patientActor(patient),
			req: &request.BookAppointmentRequest{
				DoctorID: "7b4c1c9e-0000-4000-8000-000000000000", Date: "2026-03-04", Time: "10:00", Type: "video", Reason: "x",
			},
			want: ErrNotFound,
		},
		{name: "not accepting", actor: patientActor(patient), req: bookReq(closed, now.Add(48*time.Hour), entity.ModalityVideo), want: ErrPolicy},
		{name: "in the past", actor: patientActor(patient), req: bookReq(doctor, now.Add(-time.Hour), entity.ModalityVideo), want: ErrValidation},
		{name: "right now", actor: patientActor(patient), req: bookReq(doctor, now, entity.ModalityVideo), want: ErrValidation},
		{name: "bad time", actor: patientActor(patient), req: &request.BookAppointmentRequest{
			DoctorID: doctor.ID.String(), Date: "2026-03-04", Time: "25:00", Type: "video", Reason: "x",
		}, want: ErrValidation},
		{name: "bad modality", actor: patientActor(patient), req: &request.BookAppointmentRequest{
			DoctorID: doctor.ID.String(), Date: "2026-03-04", Time: "10:00", Type: "fax", Reason: "x",
		}, want: ErrValidation},
		{name: "missing reason", actor: patientActor(patient), req: &request.BookAppointmentRequest{
			DoctorID: doctor.ID.String(), Date: "2026-03-04", Time: "10:00", Type: "video",
		}, want: ErrValidation},
		{name: "doctor cannot book", actor: Actor{UserID: doctor.UserID, Role: entity.RoleDoctor}, req: bookReq(doctor, now.Add(48*time.Hour), entity.ModalityVideo), want: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Appointment.Book(context.Background(), tt.actor, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Book() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCancellationScenarios(t *testing.T) {
	tests := []struct {
		name       string
		advance    time.Duration
		wantFee    float64
		wantRefund float64
		wantStatus entity.RefundStatus
	}{
		{name: "30h before", advance: 18 * time.Hour, wantFee: 0, wantRefund: 600, wantStatus: entity.RefundProcessed},
		{name: "10h before", advance: 38 * time.Hour, wantFee: 300, wantRefund: 300, wantStatus: entity.RefundPending},
		{name: "1h before", advance: 47 * time.Hour, wantFee: 600, wantRefund: 0, wantStatus: entity.RefundPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			patient := env.addUser(t, entity.RolePatient, "a@example.com")
			_, doctor := env.addDoctor(t, "doc@example.com")

			booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
				bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if booked.Payment.Amount != 600 {
				t.Fatalf("amount = %v, want 600", booked.Payment.Amount)
			}

			env.clock.Set(env.clock.Now().Add(tt.advance))
			got, err := env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID,
				&request.CancelAppointmentRequest{Reason: strPtr("Feeling better")})
			if err != nil {
				t.Fatalf("Cancel() error = %v", err)
			}
			if got.CancellationFee != tt.wantFee || got.RefundAmount != tt.wantRefund {
				t.Errorf("fee/refund = %v/%v, want %v/%v", got.CancellationFee, got.RefundAmount, tt.wantFee, tt.wantRefund)
			}
			c := got.Appointment.Cancellation
			if c == nil {
				t.Fatal("cancellation record missing")
			}
			if c.CancelledBy != entity.RolePatient || c.Reason != "Feeling better" || c.RefundStatus != tt.wantStatus {
				t.Errorf("cancellation = %+v", c)
			}
			if got.Appointment.Status != entity.StatusCancelled {
				t.Errorf("status = %s, want cancelled", got.Appointment.Status)
			}
		})
	}
}

func TestCancelRequiresNoticeWhenConfigured(t *testing.T) {
	env := newTestEnv(t, func(c *utils.Config) { c.Policy.CancellationRequireNotice = true })

	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	env.clock.Set(env.clock.Now().Add(47 * time.Hour))
	_, err = env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID, &request.CancelAppointmentRequest{})
	if !errors.Is(err, ErrPolicy) {
		t.Fatalf("Cancel() error = %v, want ErrPolicy", err)
	}
}

func TestCancelTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if _, err := env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID, &request.CancelAppointmentRequest{}); err != nil {
		t.Fatalf("first Cancel() error = %v", err)
	}
	_, err = env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID, &request.CancelAppointmentRequest{})
	if !errors.Is(err, ErrPolicy) {
		t.Fatalf("second Cancel() error = %v, want ErrPolicy", err)
	}
}

func TestDoctorCancellationIsFree(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	doctorUser, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityInPerson))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	env.clock.Set(env.clock.Now().Add(47 * time.Hour))
	got, err := env.svc.Appointment.Cancel(context.Background(), Actor{UserID: doctorUser.ID, Role: entity.RoleDoctor}, booked.ID, &request.CancelAppointmentRequest{})
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if got.CancellationFee != 0 || got.RefundAmount != 800 {
		t.Errorf("fee/refund = %v/%v, want 0/800", got.CancellationFee, got.RefundAmount)
	}
	if got.Appointment.Cancellation.Reason != "Cancelled by doctor" {
		t.Errorf("reason = %q", got.Appointment.Cancellation.Reason)
	}
}

func TestUpdateWithinNoticeRejected(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	env.clock.Set(env.clock.Now().Add(30 * time.Hour))
	_, err = env.svc.Appointment.Update(context.Background(), patientActor(patient), booked.ID,
		&request.UpdateAppointmentRequest{Reason: strPtr("Follow-up")})
	if !errors.Is(err, ErrPolicy) {
		t.Fatalf("Update() error = %v, want ErrPolicy", err)
	}
}

func TestUpdateReschedulesAndReprices(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	other := env.addUser(t, entity.RolePatient, "b@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	start := env.clock.Now().Add(48 * time.Hour)

	mine, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), bookReq(doctor, start, entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(other), bookReq(doctor, start.Add(time.Hour), entity.ModalityVideo)); err != nil {
		t.Fatalf("Book() other error = %v", err)
	}

	// Moving onto the other patient's slot conflicts.
	_, err = env.svc.Appointment.Update(context.Background(), patientActor(patient), mine.ID,
		&request.UpdateAppointmentRequest{Time: strPtr(start.Add(time.Hour).Format(entity.TimeLayout))})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Update() onto taken slot error = %v, want ErrConflict", err)
	}

	got, err := env.svc.Appointment.Update(context.Background(), patientActor(patient), mine.ID,
		&request.UpdateAppointmentRequest{
			Time: strPtr(start.Add(30 * time.Minute).Format(entity.TimeLayout)),
			Type: strPtr(string(entity.ModalityInPerson)),
		})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Time != start.Add(30*time.Minute).Format(entity.TimeLayout) {
		t.Errorf("time = %s", got.Time)
	}
	if got.Payment.Amount != 800 {
		t.Errorf("amount = %v, want 800", got.Payment.Amount)
	}

	// The original slot is free again.
	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(other), bookReq(doctor, start, entity.ModalityVideo)); err != nil {
		t.Fatalf("rebook old slot error = %v", err)
	}
}

func TestUpdateByOtherPatientForbidden(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	stranger := env.addUser(t, entity.RolePatient, "b@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if _, err := env.svc.Appointment.Get(context.Background(), patientActor(stranger), booked.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Get() error = %v, want ErrForbidden", err)
	}
	if _, err := env.svc.Appointment.Cancel(context.Background(), patientActor(stranger), booked.ID, &request.CancelAppointmentRequest{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Cancel() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	doctorUser, doctor := env.addDoctor(t, "doc@example.com")
	doctorActor := Actor{UserID: doctorUser.ID, Role: entity.RoleDoctor}
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	steps := []struct {
		actor  Actor
		status string
		want   error
	}{
		{patientActor(patient), "confirmed", ErrForbidden},
		{doctorActor, "completed", ErrPolicy},
		{doctorActor, "confirmed", nil},
		{doctorActor, "in-progress", nil},
		{doctorActor, "no-show", ErrPolicy},
		{doctorActor, "completed", nil},
		{doctorActor, "confirmed", ErrPolicy},
		{doctorActor, "cancelled", ErrPolicy},
	}

	for i, step := range steps {
		_, err := env.svc.Appointment.UpdateStatus(context.Background(), step.actor, booked.ID,
			&request.UpdateStatusRequest{Status: step.status, DoctorNotes: strPtr("ok")})
		if step.want == nil && err != nil {
			t.Fatalf("step %d (%s): unexpected error %v", i, step.status, err)
		}
		if step.want != nil && !errors.Is(err, step.want) {
			t.Fatalf("step %d (%s): error = %v, want %v", i, step.status, err, step.want)
		}
	}
}

func TestUpdateStatusCancelledRunsCancelFlow(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	admin := env.addUser(t, entity.RoleAdmin, "admin@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	got, err := env.svc.Appointment.UpdateStatus(context.Background(), Actor{UserID: admin.ID, Role: entity.RoleAdmin}, booked.ID,
		&request.UpdateStatusRequest{Status: "cancelled", Reason: strPtr("Clinic closed")})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if got.Status != entity.StatusCancelled || got.Cancellation == nil || got.Cancellation.CancelledBy != entity.RoleAdmin {
		t.Errorf("got %+v", got)
	}
}

func TestPay(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	_, err = env.svc.Appointment.Pay(context.Background(), patientActor(patient), booked.ID,
		&request.PayAppointmentRequest{Method: "card", Amount: 500})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Pay() wrong amount error = %v, want ErrValidation", err)
	}

	got, err := env.svc.Appointment.Pay(context.Background(), patientActor(patient), booked.ID,
		&request.PayAppointmentRequest{Method: "card", Amount: 600, TransactionID: strPtr("tx-1")})
	if err != nil {
		t.Fatalf("Pay() error = %v", err)
	}
	if got.Payment.Status != entity.PaymentPaid || got.Payment.PaidAt == nil {
		t.Errorf("payment = %+v", got.Payment)
	}

	_, err = env.svc.Appointment.Pay(context.Background(), patientActor(patient), booked.ID,
		&request.PayAppointmentRequest{Method: "card", Amount: 600})
	if !errors.Is(err, ErrPolicy) {
		t.Fatalf("second Pay() error = %v, want ErrPolicy", err)
	}
}

func TestCancelRefundsPaidAppointment(t *testing.T) {
	tests := []struct {
		name        string
		pay         bool
		noticeHours time.Duration
		wantPayment entity.PaymentStatus
		wantRefund  entity.RefundStatus
	}{
		{"paid with full notice", true, 48, entity.PaymentRefunded, entity.RefundProcessed},
		{"paid with late notice", true, 10, entity.PaymentPaid, entity.RefundPending},
		{"unpaid", false, 48, entity.PaymentPending, entity.RefundProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			patient := env.addUser(t, entity.RolePatient, "a@example.com")
			_, doctor := env.addDoctor(t, "doc@example.com")
			booked, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
				bookReq(doctor, env.clock.Now().Add(tt.noticeHours*time.Hour), entity.ModalityVideo))
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if tt.pay {
				if _, err := env.svc.Appointment.Pay(context.Background(), patientActor(patient), booked.ID,
					&request.PayAppointmentRequest{Method: "card", Amount: 600}); err != nil {
					t.Fatalf("Pay() error = %v", err)
				}
			}

			got, err := env.svc.Appointment.Cancel(context.Background(), patientActor(patient), booked.ID, &request.CancelAppointmentRequest{})
			if err != nil {
				t.Fatalf("Cancel() error = %v", err)
			}
			if got.Appointment.Payment.Status != tt.wantPayment {
				t.Errorf("payment status = %s, want %s", got.Appointment.Payment.Status, tt.wantPayment)
			}
			if got.Appointment.Cancellation.RefundStatus != tt.wantRefund {
				t.Errorf("refund status = %s, want %s", got.Appointment.Cancellation.RefundStatus, tt.wantRefund)
			}
		})
	}
}

func TestListScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, entity.RolePatient, "a@example.com")
	b := env.addUser(t, entity.RolePatient, "b@example.com")
	admin := env.addUser(t, entity.RoleAdmin, "admin@example.com")
	doctorUser, doctor := env.addDoctor(t, "doc@example.com")
	otherDoctorUser, _ := env.addDoctor(t, "doc2@example.com")
	start := env.clock.Now().Add(48 * time.Hour)

	for i, p := range []*entity.User{a, a, b} {
		if _, err := env.svc.Appointment.Book(context.Background(), patientActor(p),
			bookReq(doctor, start.Add(time.Duration(i)*30*time.Minute), entity.ModalityVideo)); err != nil {
			t.Fatalf("Book() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		actor Actor
		want  int64
	}{
		{"patient a", patientActor(a), 2},
		{"patient b", patientActor(b), 1},
		{"doctor", Actor{UserID: doctorUser.ID, Role: entity.RoleDoctor}, 3},
		{"other doctor", Actor{UserID: otherDoctorUser.ID, Role: entity.RoleDoctor}, 0},
		{"admin", Actor{UserID: admin.ID, Role: entity.RoleAdmin}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &request.AppointmentListRequest{}
			req.Page, req.PerPage = 1, 10
			got, err := env.svc.Appointment.List(context.Background(), tt.actor, req)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got.Pagination.Total != tt.want || int64(len(got.Items)) != tt.want {
				t.Errorf("total = %d items = %d, want %d", got.Pagination.Total, len(got.Items), tt.want)
			}
		})
	}
}

func TestEachTransitionNotifiesOnce(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	actor := patientActor(patient)

	booked, err := env.svc.Appointment.Book(context.Background(), actor, bookReq(doctor, env.clock.Now().Add(72*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := env.svc.Appointment.Update(context.Background(), actor, booked.ID, &request.UpdateAppointmentRequest{Reason: strPtr("Checkup")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := env.svc.Appointment.Cancel(context.Background(), actor, booked.ID, &request.CancelAppointmentRequest{}); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	// Rejected transitions emit nothing.
	_, _ = env.svc.Appointment.Cancel(context.Background(), actor, booked.ID, &request.CancelAppointmentRequest{})

	want := []string{"Appointment Booked", "Appointment Updated", "Appointment Cancelled"}
	got := env.notifications.titlesFor(patient.ID)
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNotificationFailureDoesNotFailBooking(t *testing.T) {
	env := newTestEnv(t)
	env.notifications.err = errors.New("store down")
	env.mail.err = errors.New("smtp down")
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")

	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(patient),
		bookReq(doctor, env.clock.Now().Add(48*time.Hour), entity.ModalityVideo)); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if len(env.appointments.rows) != 1 {
		t.Errorf("appointments = %d, want 1", len(env.appointments.rows))
	}
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	env := newTestEnv(t)
	patient := env.addUser(t, entity.RolePatient, "a@example.com")
	_, doctor := env.addDoctor(t, "doc@example.com")
	// Wednesday 2026-03-04, template 09:00-12:00.
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	cancelled, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), bookReq(doctor, day.Add(9*time.Hour), entity.ModalityVideo))
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := env.svc.Appointment.Cancel(context.Background(), patientActor(patient), cancelled.ID, &request.CancelAppointmentRequest{}); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := env.svc.Appointment.Book(context.Background(), patientActor(patient), bookReq(doctor, day.Add(10*time.Hour), entity.ModalityVideo)); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	got, err := env.svc.Doctor.GetAvailability(context.Background(), doctor.ID.String(), "2026-03-04")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if len(got.AvailableSlots) != len(want) {
		t.Fatalf("slots = %v, want %v", got.AvailableSlots, want)
	}
	for i := range want {
		if got.AvailableSlots[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, got.AvailableSlots[i], want[i])
		}
	}

	// Saturday has no template.
	weekend, err := env.svc.Doctor.GetAvailability(context.Background(), doctor.ID.String(), "2026-03-07")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if len(weekend.AvailableSlots) != 0 {
		t.Errorf("weekend slots = %v, want none", weekend.AvailableSlots)
	}

	// Today's slots that already started are dropped (clock is Monday 09:00).
	today, err := env.svc.Doctor.GetAvailability(context.Background(), doctor.ID.String(), "2026-03-02")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if len(today.AvailableSlots) == 0 || today.AvailableSlots[0] != "09:30" {
		t.Errorf("today slots = %v, want to start at 09:30", today.AvailableSlots)
	}
}
