package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldercare-backend/internal/model"
)

func logs(medID int64, statuses ...model.IntakeStatus) []model.IntakeLog {
	out := make([]model.IntakeLog, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, model.IntakeLog{MedicationID: medID, Status: s})
	}
	return out
}

func TestComputeAdherenceEmpty(t *testing.T) {
	got := ComputeAdherence(nil)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 0.0, got.Rate)
}

func TestComputeAdherenceCounts(t *testing.T) {
	in := logs(1,
		model.IntakeTaken, model.IntakeTaken, model.IntakeTaken,
		model.IntakeMissed, model.IntakeSkipped,
		model.IntakeLate,
	)
	got := ComputeAdherence(in)

	assert.Equal(t, 3, got.Taken)
	assert.Equal(t, 2, got.Missed, "missed must aggregate MISSED and SKIPPED")
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 5, got.Total, "late doses stay out of the rate denominator")
	assert.InDelta(t, 0.6, got.Rate, 1e-9)
	assert.GreaterOrEqual(t, got.Rate, 0.0)
	assert.LessOrEqual(t, got.Rate, 1.0)
}

func TestMedicationAdherenceGroupsAndSorts(t *testing.T) {
	meds := []model.Medication{
		{ID: 2, Name: "Paracetamol"},
		{ID: 1, Name: "Atorvastatin"},
		{ID: 3, Name: "Metformin"},
	}
	in := append(logs(1, model.IntakeTaken, model.IntakeTaken),
		logs(2, model.IntakeMissed, model.IntakeTaken)...)

	details := MedicationAdherence(meds, in)
	require.Len(t, details, 3)

	assert.Equal(t, "Atorvastatin", details[0].MedicationName)
	assert.Equal(t, 1.0, details[0].AdherenceRate)

	assert.Equal(t, "Metformin", details[1].MedicationName)
	assert.Equal(t, 0, details[1].TotalDoses, "medication with no logs still appears")
	assert.Equal(t, 0.0, details[1].AdherenceRate)

	assert.Equal(t, "Paracetamol", details[2].MedicationName)
	assert.InDelta(t, 0.5, details[2].AdherenceRate, 1e-9)
}

func TestOverallAdherenceIsUnweightedMean(t *testing.T) {
	// Medication A: 2/2 taken. Medication B: 0/10 taken. The overall rate is
	// the mean of per-medication rates (0.5), not the pooled 2/12.
	a := logs(1, model.IntakeTaken, model.IntakeTaken)
	b := logs(2,
		model.IntakeMissed, model.IntakeMissed, model.IntakeMissed, model.IntakeMissed, model.IntakeMissed,
		model.IntakeMissed, model.IntakeMissed, model.IntakeMissed, model.IntakeMissed, model.IntakeMissed,
	)
	meds := []model.Medication{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	details := MedicationAdherence(meds, append(a, b...))
	assert.InDelta(t, 0.5, OverallAdherence(details), 1e-9)
}

func TestOverallAdherenceNoMedications(t *testing.T) {
	assert.Equal(t, 0.0, OverallAdherence(nil))
}
