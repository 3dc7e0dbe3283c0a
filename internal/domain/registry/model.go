// Package registry holds the clinic's doctor roster. Doctors are seeded once
// and never created, edited, or deleted afterwards; every other collection
// refers to them by id only.
package registry

import "errors"

// ErrDoctorNotFound indicates no doctor has the requested id.
var ErrDoctorNotFound = errors.New("doctor not found")

// Doctor is an immutable roster entry. JSON field names match the persisted
// collection schema.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	PhoneNumber    string `json:"phoneNumber"`
}

// DefaultDoctors returns the two canonical doctors seeded into an empty
// clinic. Their ids are well known; patients and receipts reference them.
func DefaultDoctors() []Doctor {
	return []Doctor{
		{
			ID:             "1",
			Name:           "Dr. Shakil Shikalgar",
			Specialization: "Orthopedics Surgeon",
			PhoneNumber:    "+91 9423287582",
		},
		{
			ID:             "2",
			Name:           "Dr. Ruksana Shikalgar",
			Specialization: "Pediatrics",
			PhoneNumber:    "+91 9421284224",
		},
	}
}
