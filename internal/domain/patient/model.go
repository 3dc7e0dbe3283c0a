// Package patient implements patient registration, lookup, and visit
// recording. A Visit exists only inside its patient's visitHistory; it has no
// identity of its own outside that collection.
package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrPatientNotFound indicates no patient matched the id or query.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrVisitNotFound indicates the visit id is not in the patient's history.
	ErrVisitNotFound = errors.New("visit not found")
)

// Gender is the registered gender of a patient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used for visit dates. Visits carry
// no time component.
const DateLayout = "2006-01-02"

// Patient is a registered patient. DoctorID is a weak reference to the
// doctor roster: a dangling value is tolerated and surfaces as "doctor not
// found" where the roster is consulted. JSON field names match the persisted
// collection schema.
type Patient struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Gender       Gender  `json:"gender"`
	Address      string  `json:"address"`
	PhoneNumber  string  `json:"phoneNumber"`
	DoctorID     string  `json:"doctorId"`
	VisitHistory []Visit `json:"visitHistory"`
}

// Visit is one consultation. Clinical fields are immutable once recorded;
// Paid and ReceiptGenerated flip false→true exactly once, by receipt
// generation, and never reverse.
type Visit struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	Symptoms         string  `json:"symptoms"`
	Diagnosis        string  `json:"diagnosis"`
	Treatment        string  `json:"treatment"`
	Prescription     string  `json:"prescription"`
	Fees             float64 `json:"fees"`
	Paid             bool    `json:"paid"`
	ReceiptGenerated bool    `json:"receiptGenerated"`
}

// FindVisit returns the visit with the given id, or ErrVisitNotFound.
func (p *Patient) FindVisit(visitID string) (*Visit, error) {
	for i := range p.VisitHistory {
		if p.VisitHistory[i].ID == visitID {
			return &p.VisitHistory[i], nil
		}
	}
	return nil, ErrVisitNotFound
}

// Registration carries the caller-supplied fields of a patient record.
type Registration struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	DoctorID    string `json:"doctorId"`
}

// Validate reports the first problem with the registration fields.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if !r.Gender.Valid() {
		return fmt.Errorf("gender must be male, female, or other")
	}
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("address is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return fmt.Errorf("phone number is required")
	}
	if strings.TrimSpace(r.DoctorID) == "" {
		return fmt.Errorf("doctor id is required")
	}
	return nil
}

// VisitInput carries the caller-supplied fields of a new visit. The date may
// be backdated; history keeps entry order regardless.
type VisitInput struct {
	Date         string  `json:"date"`
	Symptoms     string  `json:"symptoms"`
	Diagnosis    string  `json:"diagnosis"`
	Treatment    string  `json:"treatment"`
	Prescription string  `json:"prescription"`
	Fees         float64 `json:"fees"`
}

// Validate reports the first problem with the visit fields.
func (v VisitInput) Validate() error {
	if _, err := time.Parse(DateLayout, v.Date); err != nil {
		return fmt.Errorf("date must be a calendar date (%s)", DateLayout)
	}
	if v.Fees < 0 {
		return fmt.Errorf("fees must not be negative")
	}
	return nil
}
