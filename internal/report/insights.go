package report

import (
	"fmt"
	"strings"
)

// GenerateInsights turns the aggregated figures into human-readable
// observations. Rules run in a fixed order; every rule that matches
// contributes a line. The function is pure: re-running it on the same
// figures always yields the same list.
func GenerateInsights(
	overallAdherence float64,
	details []MedicationAdherenceDetail,
	appointments AppointmentSummary,
	reminders ReminderStats,
	team []CareTeamActivity,
) []string {
	insights := []string{}

	// Overall adherence bands. A rate of exactly zero stays silent: with no
	// recorded doses there is nothing to alert on.
	switch {
	case overallAdherence >= 0.9:
		insights = append(insights, "Excellent medication adherence (above 90%). The treatment plan is being followed very well.")
	case overallAdherence >= 0.7:
		insights = append(insights, "Moderate medication adherence (70-90%). Consider reinforcing reminders.")
	case overallAdherence > 0:
		insights = append(insights, "Low medication adherence (below 70%). Prompt intervention by the care team is required.")
	}

	var problem []string
	for _, d := range details {
		if d.AdherenceRate < 0.7 && d.TotalDoses > 0 {
			problem = append(problem, d.MedicationName)
			if len(problem) == 3 {
				break
			}
		}
	}
	if len(problem) > 0 {
		insights = append(insights, fmt.Sprintf("Medications with low adherence: %s", strings.Join(problem, ", ")))
	}

	if appointments.Missed > 0 {
		insights = append(insights, fmt.Sprintf("%d appointment(s) missed. Consider setting more frequent reminders.", appointments.Missed))
	}
	if appointments.Total > 0 && appointments.Completed == appointments.Total {
		insights = append(insights, "All medical appointments were completed successfully.")
	}

	if reminders.Total > 0 {
		completionRate := float64(reminders.Completed) / float64(reminders.Total) * 100
		if completionRate >= 80 {
			insights = append(insights, fmt.Sprintf("High reminder completion rate (%.0f%%).", completionRate))
		} else {
			insights = append(insights, fmt.Sprintf("Low reminder completion rate (%.0f%%). Review how effective the reminders are.", completionRate))
		}
	}

	// The team slice arrives sorted by action count descending, so the first
	// active member is the most active one.
	var active []CareTeamActivity
	for _, m := range team {
		if m.ActionsCount > 0 {
			active = append(active, m)
		}
	}
	if len(active) == 0 && len(team) > 0 {
		insights = append(insights, "No care team member has recorded activity in this period.")
	} else if len(active) > 0 {
		most := active[0]
		insights = append(insights, fmt.Sprintf("Most active team member: %s (%s) with %d actions.", most.UserName, most.Role, most.ActionsCount))
	}

	return insights
}
