package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/pkg/mailer"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// ==================== USERS ====================

type memUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrEmailTaken
		}
	}
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.rows {
		u := u
		out = append(out, &u)
	}
	return page(out, limit, offset), nil
}

func (m *memUsers) CountAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.ID]; !ok {
		return repository.ErrRecordMissing
	}
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repository.ErrRecordMissing
	}
	u.LastLoginAt = &at
	m.rows[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repository.ErrRecordMissing
	}
	u.IsActive = false
	m.rows[id] = u
	return nil
}

// ==================== DOCTORS ====================

type memDoctors struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.Doctor
}

func (m *memDoctors) Create(_ context.Context, d *entity.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.LicenseNumber == d.LicenseNumber {
			return repository.ErrLicenseTaken
		}
	}
	m.rows[d.ID] = *d
	return nil
}

func (m *memDoctors) Update(_ context.Context, d *entity.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[d.ID]; !ok {
		return repository.ErrRecordMissing
	}
	m.rows[d.ID] = *d
	return nil
}

func (m *memDoctors) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memDoctors) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memDoctors) matching(filter repository.DoctorFilter) []*entity.Doctor {
	var out []*entity.Doctor
	for _, d := range m.rows {
		if filter.OnlyListed && (!d.IsVerified || !d.IsAcceptingPatients) {
			continue
		}
		if filter.Specialty != "" && string(d.Specialty) != filter.Specialty {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(d.FullName()), strings.ToLower(filter.Search)) {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RatingAverage > out[j].RatingAverage })
	return out
}

func (m *memDoctors) FindAll(_ context.Context, filter repository.DoctorFilter, limit, offset int) ([]*entity.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.matching(filter), limit, offset), nil
}

func (m *memDoctors) Count(_ context.Context, filter repository.DoctorFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memDoctors) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return repository.ErrRecordMissing
	}
	d.IsVerified = verified
	m.rows[id] = d
	return nil
}

// ==================== APPOINTMENTS ====================

// memAppointments enforces the same live-slot uniqueness as the database.
type memAppointments struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.Appointment
}

func (m *memAppointments) slotHeld(a *entity.Appointment) bool {
	if !a.BlocksSlot() {
		return false
	}
	for _, other := range m.rows {
		if other.ID != a.ID && other.BlocksSlot() &&
			other.DoctorID == a.DoctorID &&
			other.AppointmentDate.Equal(a.AppointmentDate) &&
			other.AppointmentTime == a.AppointmentTime {
			return true
		}
	}
	return false
}

func (m *memAppointments) Create(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slotHeld(a) {
		return repository.ErrSlotTaken
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memAppointments) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memAppointments) matching(filter repository.AppointmentFilter) []*entity.Appointment {
	var out []*entity.Appointment
	for _, a := range m.rows {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.After(out[j].AppointmentDate)
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out
}

func (m *memAppointments) FindAll(_ context.Context, filter repository.AppointmentFilter, limit, offset int) ([]*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.matching(filter), limit, offset), nil
}

func (m *memAppointments) Count(_ context.Context, filter repository.AppointmentFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memAppointments) Update(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[a.ID]; !ok {
		return repository.ErrRecordMissing
	}
	if m.slotHeld(a) {
		return repository.ErrSlotTaken
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memAppointments) FindActiveBySlot(_ context.Context, doctorID uuid.UUID, date time.Time, hhmm string) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.DoctorID == doctorID && a.AppointmentDate.Equal(date) && a.AppointmentTime == hhmm && a.BlocksSlot() {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memAppointments) FindBookedTimes(_ context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, a := range m.rows {
		if a.DoctorID == doctorID && a.AppointmentDate.Equal(date) && a.BlocksSlot() {
			out = append(out, a.AppointmentTime)
		}
	}
	return out, nil
}

// ==================== NOTIFICATIONS ====================

type memNotifications struct {
	mu   sync.Mutex
	rows []entity.Notification
	err  error
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotifications) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.rows {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, nil
}

func (m *memNotifications) forUser(userID uuid.UUID, unreadOnly bool) []*entity.Notification {
	var out []*entity.Notification
	for i := len(m.rows) - 1; i >= 0; i-- {
		n := m.rows[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, &n)
	}
	return out
}

func (m *memNotifications) FindByUserID(_ context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.forUser(userID, unreadOnly), limit, offset), nil
}

func (m *memNotifications) CountByUserID(_ context.Context, userID uuid.UUID, unreadOnly bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.forUser(userID, unreadOnly))), nil
}

func (m *memNotifications) MarkRead(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			now := time.Now()
			m.rows[i].IsRead = true
			m.rows[i].ReadAt = &now
			return nil
		}
	}
	return repository.ErrRecordMissing
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for i := range m.rows {
		if m.rows[i].UserID == userID && !m.rows[i].IsRead {
			m.rows[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrRecordMissing
}

func (m *memNotifications) titlesFor(userID uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n.Title)
		}
	}
	return out
}

// ==================== SESSIONS & TOKENS ====================

type memSessions struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.Session
}

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.TokenID] = *s
	return nil
}

func (m *memSessions) FindByTokenID(_ context.Context, tokenID uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[tokenID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessions) Revoke(_ context.Context, tokenID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[tokenID]
	if !ok {
		return nil
	}
	now := time.Now()
	s.RevokedAt = &now
	m.rows[tokenID] = s
	return nil
}

func (m *memSessions) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, s := range m.rows {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			m.rows[id] = s
		}
	}
	return nil
}

func (m *memSessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	return 0, nil
}

type memTokens struct {
	mu   sync.Mutex
	rows []entity.UserToken
}

func (m *memTokens) Create(_ context.Context, t *entity.UserToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *t)
	return nil
}

func (m *memTokens) FindValid(_ context.Context, hash string, purpose entity.TokenPurpose, now time.Time) (*entity.UserToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.TokenHash == hash && t.Purpose == purpose && t.UsedAt == nil && now.Before(t.ExpiresAt) {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memTokens) MarkUsed(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].UsedAt = &at
			return nil
		}
	}
	return repository.ErrRecordMissing
}

func (m *memTokens) InvalidateUser(_ context.Context, userID uuid.UUID, purpose entity.TokenPurpose, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].UserID == userID && m.rows[i].Purpose == purpose && m.rows[i].UsedAt == nil {
			m.rows[i].UsedAt = &at
		}
	}
	return nil
}

// ==================== COLLABORATORS ====================

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) last() mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return mailer.Message{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeDenylist struct {
	denied map[string]time.Duration
}

func (f *fakeDenylist) Deny(_ context.Context, tokenID string, ttl time.Duration) error {
	f.denied[tokenID] = ttl
	return nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ==================== ENVIRONMENT ====================

type testEnv struct {
	svc           *Service
	users         *memUsers
	doctors       *memDoctors
	appointments  *memAppointments
	notifications *memNotifications
	sessions      *memSessions
	tokens        *memTokens
	mail          *fakeMailer
	denylist      *fakeDenylist
	clock         *clock
	config        *utils.Config
}

func newTestEnv(t *testing.T, opts ...func(*utils.Config)) *testEnv {
	t.Helper()

	env := &testEnv{
		users:         &memUsers{rows: map[uuid.UUID]entity.User{}},
		doctors:       &memDoctors{rows: map[uuid.UUID]entity.Doctor{}},
		appointments:  &memAppointments{rows: map[uuid.UUID]entity.Appointment{}},
		notifications: &memNotifications{},
		sessions:      &memSessions{rows: map[uuid.UUID]entity.Session{}},
		tokens:        &memTokens{},
		mail:          &fakeMailer{},
		denylist:      &fakeDenylist{denied: map[string]time.Duration{}},
		clock:         &clock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		config: &utils.Config{
			App: utils.AppConfig{FrontendURL: "http://localhost:3000"},
			JWT: utils.JWTConfig{
				AccessSecret:        "access-secret",
				AccessExpiryMinutes: 60,
				RefreshSecret:       "refresh-secret",
				RefreshExpiryHours:  24,
			},
			Policy: utils.PolicyConfig{
				NoticeHours:       24,
				SlotMinutes:       30,
				VerifyTokenHours:  24,
				ResetTokenMinutes: 10,
			},
		},
	}

	for _, opt := range opts {
		opt(env.config)
	}

	repo := &repository.Repository{
		User:         env.users,
		Doctor:       env.doctors,
		Appointment:  env.appointments,
		Notification: env.notifications,
		Session:      env.sessions,
		UserToken:    env.tokens,
	}

	env.svc = NewService(repo, env.config, Dependencies{
		Tokens:   utils.NewTokenManager(env.config.JWT).WithClock(env.clock.Now),
		Mailer:   env.mail,
		Denylist: env.denylist,
		Location: time.UTC,
		Now:      env.clock.Now,
	}, zaptest.NewLogger(t))

	return env
}

func (e *testEnv) addUser(t *testing.T, role entity.UserRole, email string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &entity.User{
		Base:               entity.NewBase(e.clock.Now()),
		FirstName:          "Test",
		LastName:           string(role),
		Email:              email,
		PasswordHash:       &hash,
		Phone:              "5550001111",
		Role:               role,
		RegistrationMethod: entity.RegistrationEmail,
		IsActive:           true,
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// addDoctor creates a verified doctor open 09:00-12:00 every weekday
// charging 800 in person and 600 by video.
func (e *testEnv) addDoctor(t *testing.T, email string) (*entity.User, *entity.Doctor) {
	t.Helper()
	u := e.addUser(t, entity.RoleDoctor, email)

	week := entity.WeeklyAvailability{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		week[day] = entity.DayAvailability{
			IsAvailable: true,
			Slots:       []entity.TimeRange{{StartTime: "09:00", EndTime: "12:00"}},
		}
	}

	d := &entity.Doctor{
		BaseNoDelete:        entity.BaseNoDelete{ID: uuid.New(), CreatedAt: e.clock.Now()},
		UserID:              u.ID,
		LicenseNumber:       "LIC-" + u.ID.String()[:8],
		Specialty:           entity.SpecialtyCardiology,
		Fee:                 entity.ConsultationFee{InPerson: 800, Video: 600},
		Availability:        week,
		IsVerified:          true,
		IsAcceptingPatients: true,
		ConsultationTypes:   []entity.Modality{entity.ModalityInPerson, entity.ModalityVideo, entity.ModalityPhone},
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
	}
	if err := e.doctors.Create(context.Background(), d); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return u, d
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
