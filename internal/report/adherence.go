package report

import (
	"sort"

	"eldercare-backend/internal/model"
)

// ComputeAdherence rolls up a set of intake logs. Rate is taken/total with
// total = taken + missed; zero doses yield rate 0.0, never NaN.
func ComputeAdherence(logs []model.IntakeLog) AdherenceTotals {
	var t AdherenceTotals
	for _, l := range logs {
		switch l.Status {
		case model.IntakeTaken:
			t.Taken++
		case model.IntakeMissed, model.IntakeSkipped:
			t.Missed++
		case model.IntakeLate:
			t.Late++
		}
	}
	t.Total = t.Taken + t.Missed
	if t.Total > 0 {
		t.Rate = float64(t.Taken) / float64(t.Total)
	}
	return t
}

// MedicationAdherence groups intake logs by medication and computes one
// detail row per medication, ordered by medication name. Medications with no
// logs in the period still appear, with zero doses and rate 0.0.
func MedicationAdherence(meds []model.Medication, logs []model.IntakeLog) []MedicationAdherenceDetail {
	byMed := make(map[int64][]model.IntakeLog)
	for _, l := range logs {
		byMed[l.MedicationID] = append(byMed[l.MedicationID], l)
	}

	details := make([]MedicationAdherenceDetail, 0, len(meds))
	for _, med := range meds {
		totals := ComputeAdherence(byMed[med.ID])
		details = append(details, MedicationAdherenceDetail{
			MedicationID:   med.ID,
			MedicationName: med.Name,
			TotalDoses:     totals.Total,
			Taken:          totals.Taken,
			Missed:         totals.Missed,
			Late:           totals.Late,
			AdherenceRate:  totals.Rate,
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].MedicationName < details[j].MedicationName
	})
	return details
}

// OverallAdherence is the unweighted mean of per-medication rates. A
// medication with two doses weighs the same as one with twenty; downstream
// insight thresholds are calibrated against this mean, so it must not be
// replaced with a pooled rate. Zero medications yield 0.0.
func OverallAdherence(details []MedicationAdherenceDetail) float64 {
	if len(details) == 0 {
		return 0.0
	}
	var sum float64
	for _, d := range details {
		sum += d.AdherenceRate
	}
	return sum / float64(len(details))
}
