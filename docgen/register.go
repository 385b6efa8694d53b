/*
register.go - Register of Injury and Investigation form

Parts A-D are pre-filled from the case and incident data; parts E-G
(investigation, recommendations, action plan) are printed as blank
grids flagged for manual completion after site inspection.
*/
package docgen

import (
	"github.com/sga/workcover-engine/claims"
)

var (
	personFactors = []string{
		"Aware of the hazard", "Experienced at the task", "Familiar with the work area",
		"Inducted to the site / task", "Using appropriate PPE", "Was training provided",
		"Supervision provided", "Job Analysis performed", "Task not modified / changed",
		"PPE provided",
	}
	environmentFactors = []string{
		"Adequate temperature conditions", "Adequate lighting", "Adequate working space",
		"Clear floor and walkways", "Adequate housekeeping", "Safe noise level",
	}
	equipmentFactors = []string{
		"Correct equipment used", "Equipment in correct location", "Equipment guarded",
		"Preventative maintenance complete", "Equipment working properly",
		"Equipment had not been modified",
	}
	controlQuestions = []string{
		"Can the risk be eliminated?",
		"Can equipment or materials be substituted?",
		"Can engineering solutions be adopted?",
		"Can administrative controls be developed?",
		"Is PPE required?",
	}
)

func registerOfInjuryFields(c *claims.Case, aux Aux) FieldMap {
	return FieldMap{
		"worker_name":      Text(c.WorkerName),
		"site":             Text(c.Site),
		"dob":              Text(aux.incident("dob")),
		"occupation":       TextOrReview(aux.incident("occupation"), "Cleaner"),
		"date_of_injury":   Date(c.DateOfInjury),
		"date_reported":    Text(aux.incident("date_reported")),
		"task_performed":   Text(aux.incident("task_performed")),
		"location_detail":  Text(aux.incident("location_detail")),
		"what_happened":    Text(c.InjuryDescription),
		"witnesses":        Text(aux.incident("witnesses")),
		"employment_type":  TextHint(aux.incident("employment_type"), "Permanent / Casual / Contractor"),
		"tenure":           Text(aux.incident("tenure")),
		"avg_hours":        Text(c.ShiftStructure),
		"shift_type":       TextHint(aux.incident("shift_type"), "Day / Afternoon / Night"),
		"shift_start":      Text(aux.incident("shift_start_time")),
		"nature_of_injury": TextOrReview(aux.incident("nature_of_injury"), c.InjuryDescription),
		"body_part":        Text(aux.incident("body_part")),
		"treatment_level":  TextHint(aux.incident("treatment_level"), "No treatment / First Aid / Doctor / Hospital"),
		"lost_time":        TextHint(aux.incident("lost_time"), "Y / N"),
		"claim_made":       TextOrReview(aux.incident("claim_made"), "Y"),
	}
}

func renderRegisterOfInjury(c *claims.Case, aux Aux) ([]byte, error) {
	fm := registerOfInjuryFields(c, aux)
	p := newPDF()

	p.title("REGISTER OF INJURY AND INVESTIGATION")

	p.heading("PART A - INCIDENT DETAILS")
	p.fieldTable([]fieldRow{
		{"Employee Name", fm["worker_name"]},
		{"Workplace / Site", fm["site"]},
		{"Date of Birth", fm["dob"]},
		{"Occupation", fm["occupation"]},
		{"Date of Incident", fm["date_of_injury"]},
		{"Date Reported", fm["date_reported"]},
		{"Task being performed", fm["task_performed"]},
		{"Location where accident occurred", fm["location_detail"]},
		{"What happened?", fm["what_happened"]},
		{"Witnesses", fm["witnesses"]},
	})

	p.heading("PART B - EMPLOYMENT DETAILS")
	p.fieldTable([]fieldRow{
		{"Basis of Employment", fm["employment_type"]},
		{"How long at this job?", fm["tenure"]},
		{"Average hours/days per week", fm["avg_hours"]},
		{"Shift", fm["shift_type"]},
		{"Time shift started", fm["shift_start"]},
	})

	p.heading("PART C - INJURY DETAILS")
	p.fieldTable([]fieldRow{
		{"Nature of injury", fm["nature_of_injury"]},
		{"Body location of injury", fm["body_part"]},
		{"Injury Treatment", fm["treatment_level"]},
		{"Is this a lost time injury?", fm["lost_time"]},
		{"Is a Workers Compensation Claim being made?", fm["claim_made"]},
	})

	p.heading("PART D - ACKNOWLEDGMENT OF INJURY / DATE OF ENTRY")
	p.signatureGrid([]string{"Employee", "Employer"})

	p.heading("PART E - ACCIDENT / INCIDENT INVESTIGATION")
	p.markerPara(MarkerReview,
		"The following investigation section requires manual completion based on site inspection and interviews.")
	p.subheading("Contributing Factors to Consider:")
	p.factorGrid("Person Factors:", personFactors)
	p.factorGrid("Environment Factors:", environmentFactors)
	p.factorGrid("Equipment Factors:", equipmentFactors)

	p.heading("PART F - RECOMMENDATIONS")
	p.markerPara(MarkerReview, "Complete based on investigation findings.")
	rows := make([][]string, len(controlQuestions))
	for i, q := range controlQuestions {
		rows[i] = []string{q, "", ""}
	}
	p.grid([]float64{90, 20, 60}, []string{"Control", "Y/N", "Why/How"}, rows)

	p.heading("PART G - ACTION PLAN")
	p.markerPara(MarkerRequired, "Complete action plan with recommended corrective actions.")
	p.grid([]float64{80, 45, 45},
		[]string{"Recommended Actions", "Implementation Date", "Responsibility"},
		[][]string{{}, {}, {}})

	p.heading("PART H - COMPLETION / SIGNATURES")
	p.signatureGrid([]string{"Employee", "Employer"})

	return p.bytes()
}
