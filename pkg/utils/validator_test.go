package utils

import "testing"

type sampleRequest struct {
	Date     string `json:"date" validate:"required,date"`
	Time     string `json:"time" validate:"required,hhmm"`
	Password string `json:"password" validate:"omitempty,strongpassword"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{"valid", sampleRequest{Date: "2026-05-01", Time: "09:30", Password: "Secret123"}, nil},
		{"single digit hour", sampleRequest{Date: "2026-05-01", Time: "9:30"}, nil},
		{"bad time", sampleRequest{Date: "2026-05-01", Time: "24:00"}, []string{"time"}},
		{"bad date", sampleRequest{Date: "05/01/2026", Time: "10:00"}, []string{"date"}},
		{"weak password", sampleRequest{Date: "2026-05-01", Time: "10:00", Password: "alllowercase"}, []string{"password"}},
		{"missing", sampleRequest{}, []string{"date", "time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.req)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateStruct = %v, want fields %v", errs, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := errs[f]; !ok {
					t.Errorf("missing error for field %q in %v", f, errs)
				}
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	tok, err := GenerateURLToken()
	if err != nil {
		t.Fatalf("GenerateURLToken: %v", err)
	}
	if len(tok) != 64 {
		t.Fatalf("len(token) = %d, want 64", len(tok))
	}
	if HashToken(tok) == tok {
		t.Error("HashToken returned the raw token")
	}
	if HashToken(tok) != HashToken(tok) {
		t.Error("HashToken is not deterministic")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("Secret123", hash) {
		t.Error("CheckPasswordHash rejected the right password")
	}
	if CheckPasswordHash("secret123", hash) {
		t.Error("CheckPasswordHash accepted the wrong password")
	}
}

func TestFormatValidationErrorsIsOrdered(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"time": "time must be HH:MM",
		"date": "date must be YYYY-MM-DD",
	})
	want := "date: date must be YYYY-MM-DD; time: time must be HH:MM"
	if got != want {
		t.Errorf("FormatValidationErrors = %q, want %q", got, want)
	}
}
