package request

type TimeRangeRequest struct {
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

type DayAvailabilityRequest struct {
	IsAvailable bool               `json:"isAvailable"`
	Slots       []TimeRangeRequest `json:"slots" validate:"omitempty,max=12,dive"`
}

type ConsultationFeeRequest struct {
	InPerson *float64 `json:"inPerson" validate:"required,gte=0"`
	Video    *float64 `json:"video" validate:"required,gte=0"`
}

type EducationRequest struct {
	Degree      string `json:"degree" validate:"required,max=100"`
	Institution string `json:"institution" validate:"required,max=200"`
	Year        int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Country     string `json:"country,omitempty" validate:"omitempty,max=100"`
}

type CertificationRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	IssuingBody       string `json:"issuingBody" validate:"required,max=200"`
	IssueDate         string `json:"issueDate,omitempty" validate:"omitempty,date"`
	ExpiryDate        string `json:"expiryDate,omitempty" validate:"omitempty,date"`
	CertificateNumber string `json:"certificateNumber,omitempty" validate:"omitempty,max=100"`
}

type HospitalAffiliationRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address,omitempty" validate:"omitempty,max=300"`
	Position  string `json:"position,omitempty" validate:"omitempty,max=100"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,date"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,date"`
	IsCurrent bool   `json:"isCurrent"`
}

type DoctorServiceRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Duration    int      `json:"duration,omitempty" validate:"omitempty,gte=5,lte=480"`
	Fee         *float64 `json:"fee" validate:"required,gte=0"`
}

type AwardRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Year        int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	IssuingBody string `json:"issuingBody,omitempty" validate:"omitempty,max=200"`
}

type VerificationDocumentRequest struct {
	Type string `json:"type" validate:"required,oneof=license degree certificate identity"`
	URL  string `json:"url" validate:"required,url,max=500"`
}

type UpsertDoctorProfileRequest struct {
	LicenseNumber       string                            `json:"licenseNumber" validate:"required,max=50"`
	Specialty           string                            `json:"specialty" validate:"required"`
	SubSpecialty        *string                           `json:"subSpecialty,omitempty" validate:"omitempty,max=100"`
	Experience          int                               `json:"experience" validate:"gte=0,max=80"`
	Languages           []string                          `json:"languages,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	ConsultationFee     ConsultationFeeRequest            `json:"consultationFee" validate:"required"`
	Availability        map[string]DayAvailabilityRequest `json:"availability,omitempty" validate:"omitempty,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	About               *string                           `json:"about,omitempty" validate:"omitempty,max=1000"`
	IsAcceptingPatients *bool                             `json:"isAcceptingPatients,omitempty"`
	ConsultationTypes   []string                          `json:"consultationTypes,omitempty" validate:"omitempty,dive,oneof=in-person video phone"`

	Education             []EducationRequest            `json:"education,omitempty" validate:"omitempty,max=20,dive"`
	Certifications        []CertificationRequest        `json:"certifications,omitempty" validate:"omitempty,max=50,dive"`
	HospitalAffiliations  []HospitalAffiliationRequest  `json:"hospitalAffiliations,omitempty" validate:"omitempty,max=20,dive"`
	Services              []DoctorServiceRequest        `json:"services,omitempty" validate:"omitempty,max=50,dive"`
	Awards                []AwardRequest                `json:"awards,omitempty" validate:"omitempty,max=50,dive"`
	VerificationDocuments []VerificationDocumentRequest `json:"verificationDocuments,omitempty" validate:"omitempty,max=20,dive"`
}

type VerifyDoctorRequest struct {
	IsVerified *bool `json:"isVerified" validate:"required"`
}

type DoctorListRequest struct {
	PaginatedRequest
	Specialty string
	Search    string
}
