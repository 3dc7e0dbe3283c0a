// Package catalog serves static per-specialty suggestion lists used to
// pre-fill visit forms. Lists are advisory only; nothing validates visit
// fields against them.
package catalog

import (
	"context"
	"strings"

	"github.com/clinichq/clinic/internal/domain/registry"
)

// Options are the suggestion lists for one specialty.
type Options struct {
	Symptoms     []string `json:"symptoms"`
	Diagnosis    []string `json:"diagnosis"`
	Treatment    []string `json:"treatment"`
	Prescription []string `json:"prescription"`
}

var orthopedicOptions = Options{
	Symptoms: []string{
		"Joint pain", "Back pain", "Knee pain", "Shoulder pain", "Hip pain",
		"Neck pain", "Swelling in joints", "Stiffness", "Muscle weakness",
		"Difficulty walking", "Fracture/Injury", "Sports injury",
		"Numbness/Tingling",
	},
	Diagnosis: []string{
		"Osteoarthritis", "Rheumatoid arthritis", "Lumbar spondylosis",
		"Cervical spondylosis", "Fracture", "Ligament tear", "Meniscus tear",
		"Tendinitis", "Bursitis", "Sciatica", "Disc herniation",
		"Frozen shoulder", "Carpal tunnel syndrome", "Osteoporosis",
	},
	Treatment: []string{
		"Rest and ice therapy", "Physical therapy", "Pain management",
		"Joint immobilization", "Surgical intervention required",
		"Steroid injection", "Exercise therapy", "Weight management",
		"Bracing/Splinting", "Hot/Cold compress",
	},
	Prescription: []string{
		"Tab. Paracetamol 500mg 1-0-1 x 5 days",
		"Tab. Ibuprofen 400mg 1-0-1 x 5 days",
		"Tab. Diclofenac 50mg 1-0-1 x 7 days",
		"Tab. Calcium + Vit D3 1-0-0 x 30 days",
		"Tab. Aceclofenac 100mg 1-0-1 x 5 days",
		"Cap. Omeprazole 20mg 1-0-0 x 7 days",
		"Tab. Methycobal 500mcg 1-0-1 x 15 days",
		"Gel Diclofenac apply locally BD",
		"Tab. Etoricoxib 60mg 0-0-1 x 5 days",
		"Tab. Pregabalin 75mg 0-0-1 x 7 days",
	},
}

var pediatricOptions = Options{
	Symptoms: []string{
		"Fever", "Cough", "Cold/Runny nose", "Vomiting", "Diarrhea",
		"Stomach pain", "Ear pain", "Sore throat", "Rash", "Loss of appetite",
		"Difficulty breathing", "Crying excessively", "Not feeding well",
		"Weight loss",
	},
	Diagnosis: []string{
		"Viral fever", "Upper respiratory infection", "Acute gastroenteritis",
		"Acute otitis media", "Tonsillitis", "Bronchitis", "Pneumonia",
		"Allergic rhinitis", "Viral exanthem", "Hand foot mouth disease",
		"Chickenpox", "Measles", "Nutritional deficiency", "Growth monitoring",
	},
	Treatment: []string{
		"Symptomatic treatment", "Hydration therapy", "Antipyretics",
		"Antibiotics course", "Nebulization", "ORS and zinc supplementation",
		"Topical treatment", "Dietary modification", "Immunization",
		"Follow-up after 3 days",
	},
	Prescription: []string{
		"Syp. Paracetamol 5ml SOS for fever",
		"Syp. Cetirizine 2.5ml 0-0-1 x 5 days",
		"Syp. Amoxicillin 5ml 1-1-1 x 5 days",
		"Syp. Azithromycin 5ml 1-0-0 x 3 days",
		"Syp. Ondem 2ml SOS for vomiting",
		"ORS 1 packet in 1L water after each loose stool",
		"Syp. Zinc 5ml 1-0-0 x 14 days",
		"Syp. Calpol Plus 5ml SOS for fever",
		"Drops Nasivion 2 drops each nostril BD x 3 days",
		"Syp. Meftal-P 5ml SOS for pain/fever",
	},
}

type Service struct {
	doctors *registry.Service
}

func NewService(doctors *registry.Service) *Service {
	return &Service{doctors: doctors}
}

// ForDoctor returns the suggestion lists matching the doctor's
// specialization. Unrecognized specializations get the pediatric lists,
// matching the historical default for doctor ids other than "1".
func (s *Service) ForDoctor(ctx context.Context, doctorID string) (*Options, error) {
	doc, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if strings.Contains(strings.ToLower(doc.Specialization), "ortho") {
		return &orthopedicOptions, nil
	}
	return &pediatricOptions, nil
}
