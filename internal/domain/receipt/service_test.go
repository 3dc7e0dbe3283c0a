package receipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinichq/clinic/internal/domain/patient"
	"github.com/clinichq/clinic/internal/domain/registry"
	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type fixture struct {
	store    kvstore.Store
	patients *patient.Service
	receipts *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemStore()
	svc := NewService(NewRepoKV(store))
	svc.now = func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC) }
	return &fixture{
		store:    store,
		patients: patient.NewService(patient.NewRepoKV(store)),
		receipts: svc,
	}
}

// registerWithVisit seeds one patient with one unpaid visit and returns both.
func (f *fixture) registerWithVisit(t *testing.T) (*patient.Patient, patient.Visit) {
	t.Helper()
	ctx := context.Background()
	p, err := f.patients.RegisterOrUpdate(ctx, "", patient.Registration{
		Name:        "Asha Patil",
		Age:         34,
		Gender:      patient.GenderFemale,
		Address:     "5 Lake View",
		PhoneNumber: "9000000001",
		DoctorID:    "1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	p, err = f.patients.AddVisit(ctx, p.ID, patient.VisitInput{
		Date:     "2024-03-20",
		Symptoms: "Knee pain",
		Fees:     500,
	})
	if err != nil {
		t.Fatalf("add visit: %v", err)
	}
	return p, p.VisitHistory[0]
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, v := f.registerWithVisit(t)

	rcpt, err := f.receipts.Generate(ctx, GenerateInput{
		PatientID:     p.ID,
		VisitID:       v.ID,
		Amount:        500,
		PaymentMethod: PaymentCash,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rcpt.ID == "" {
		t.Error("expected a generated receipt id")
	}
	if rcpt.DoctorID != "1" {
		t.Errorf("doctor id not taken from patient record: %q", rcpt.DoctorID)
	}
	if rcpt.Date != "2024-03-20" {
		t.Errorf("unexpected receipt date: %q", rcpt.Date)
	}

	// The same commit flips the visit's payment flags.
	updated, err := f.patients.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	visit, err := updated.FindVisit(v.ID)
	if err != nil {
		t.Fatalf("find visit: %v", err)
	}
	if !visit.Paid || !visit.ReceiptGenerated {
		t.Errorf("visit not marked paid: %+v", visit)
	}

	all, err := f.receipts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != rcpt.ID {
		t.Errorf("unexpected receipts: %+v", all)
	}
}

func TestGenerate_AmountMayDifferFromFees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, v := f.registerWithVisit(t)

	rcpt, err := f.receipts.Generate(ctx, GenerateInput{
		PatientID:     p.ID,
		VisitID:       v.ID,
		Amount:        450,
		PaymentMethod: PaymentUPI,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rcpt.Amount != 450 {
		t.Errorf("amount must be recorded as passed: %v", rcpt.Amount)
	}
}

func TestGenerate_SecondReceiptRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, v := f.registerWithVisit(t)

	in := GenerateInput{PatientID: p.ID, VisitID: v.ID, Amount: 500, PaymentMethod: PaymentCash}
	if _, err := f.receipts.Generate(ctx, in); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := f.receipts.Generate(ctx, in); !errors.Is(err, ErrReceiptExists) {
		t.Fatalf("expected ErrReceiptExists, got %v", err)
	}

	all, _ := f.receipts.List(ctx)
	if len(all) != 1 {
		t.Errorf("refused generation must not append: %d receipts", len(all))
	}
}

func TestGenerate_PatientNotFoundWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerWithVisit(t)

	_, err := f.receipts.Generate(ctx, GenerateInput{
		PatientID:     "missing",
		VisitID:       "whatever",
		Amount:        100,
		PaymentMethod: PaymentCash,
	})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}

	all, _ := f.receipts.List(ctx)
	if len(all) != 0 {
		t.Errorf("aborted generation must not write receipts: %+v", all)
	}
}

func TestGenerate_VisitNotFoundWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.registerWithVisit(t)

	_, err := f.receipts.Generate(ctx, GenerateInput{
		PatientID:     p.ID,
		VisitID:       "missing",
		Amount:        100,
		PaymentMethod: PaymentCard,
	})
	if !errors.Is(err, patient.ErrVisitNotFound) {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}

	all, _ := f.receipts.List(ctx)
	if len(all) != 0 {
		t.Errorf("aborted generation must not write receipts: %+v", all)
	}
	updated, _ := f.patients.Get(ctx, p.ID)
	if updated.VisitHistory[0].Paid {
		t.Error("aborted generation must not touch the visit")
	}
}

func TestGenerate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, v := f.registerWithVisit(t)

	tests := []struct {
		name string
		in   GenerateInput
	}{
		{"empty patient id", GenerateInput{VisitID: v.ID, Amount: 100, PaymentMethod: PaymentCash}},
		{"empty visit id", GenerateInput{PatientID: p.ID, Amount: 100, PaymentMethod: PaymentCash}},
		{"negative amount", GenerateInput{PatientID: p.ID, VisitID: v.ID, Amount: -1, PaymentMethod: PaymentCash}},
		{"bad method", GenerateInput{PatientID: p.ID, VisitID: v.ID, Amount: 100, PaymentMethod: "cheque"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.receipts.Generate(ctx, tt.in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, v := f.registerWithVisit(t)

	rcpt, _ := f.receipts.Generate(ctx, GenerateInput{PatientID: p.ID, VisitID: v.ID, Amount: 500, PaymentMethod: PaymentCash})

	got, err := f.receipts.Get(ctx, rcpt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VisitID != v.ID {
		t.Errorf("unexpected receipt: %+v", got)
	}
	if _, err := f.receipts.Get(ctx, "missing"); !errors.Is(err, ErrReceiptNotFound) {
		t.Errorf("expected ErrReceiptNotFound, got %v", err)
	}
}

// TestClinicDayEndToEnd walks the whole flow against one shared store: seed
// the doctor roster, register a patient, record a visit, collect payment,
// and confirm every collection ends in the expected state.
func TestClinicDayEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doctors := registry.NewService(registry.NewRepoKV(f.store), zerolog.Nop())
	if err := doctors.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := f.patients.RegisterOrUpdate(ctx, "", patient.Registration{
		Name:        "Asha Patil",
		Age:         34,
		Gender:      patient.GenderFemale,
		Address:     "5 Lake View",
		PhoneNumber: "9000000001",
		DoctorID:    "1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err = f.patients.AddVisit(ctx, p.ID, patient.VisitInput{
		Date:         "2024-03-20",
		Symptoms:     "Knee pain",
		Diagnosis:    "Ligament strain",
		Treatment:    "Physiotherapy",
		Prescription: "Rest, ice packs",
		Fees:         500,
	})
	if err != nil {
		t.Fatalf("add visit: %v", err)
	}

	rcpt, err := f.receipts.Generate(ctx, GenerateInput{
		PatientID:     p.ID,
		VisitID:       p.VisitHistory[0].ID,
		Amount:        500,
		PaymentMethod: PaymentCash,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	found, err := f.patients.Find(ctx, "asha")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	visit, err := found.FindVisit(rcpt.VisitID)
	if err != nil {
		t.Fatalf("find visit: %v", err)
	}
	if !visit.Paid || !visit.ReceiptGenerated {
		t.Errorf("visit not settled after receipt: %+v", visit)
	}

	mine, err := f.patients.ListByDoctor(ctx, "1")
	if err != nil {
		t.Fatalf("list by doctor: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Asha Patil" {
		t.Errorf("unexpected doctor list: %+v", mine)
	}

	all, _ := f.receipts.List(ctx)
	if len(all) != 1 || all[0].DoctorID != "1" || all[0].PaymentMethod != PaymentCash {
		t.Errorf("unexpected receipts: %+v", all)
	}
}
