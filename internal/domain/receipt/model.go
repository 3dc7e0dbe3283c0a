// Package receipt implements payment receipt generation. Generating a
// receipt and marking the visit paid is one atomic commit across the
// receipts and patients collections.
package receipt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReceiptNotFound indicates no receipt matched the id.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrReceiptExists indicates the visit already has a receipt.
	ErrReceiptExists = errors.New("receipt already generated for this visit")
)

// PaymentMethod is how the visit was paid for.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Receipt records a payment against one visit. Amount is the amount actually
// collected, which may differ from the visit's fees. JSON field names match
// the persisted collection schema.
type Receipt struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	VisitID       string        `json:"visitId"`
	DoctorID      string        `json:"doctorId"`
	Date          string        `json:"date"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// GenerateInput carries the caller-supplied fields of a new receipt.
// DoctorID is optional; when blank it is taken from the patient record.
type GenerateInput struct {
	PatientID     string        `json:"patientId"`
	VisitID       string        `json:"visitId"`
	DoctorID      string        `json:"doctorId"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Validate reports the first problem with the input fields.
func (in GenerateInput) Validate() error {
	if strings.TrimSpace(in.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if strings.TrimSpace(in.VisitID) == "" {
		return fmt.Errorf("visit id is required")
	}
	if in.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("payment method must be cash, upi, or card")
	}
	return nil
}
