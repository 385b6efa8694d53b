package rtw

// DutyLevel describes one suitable-duties tier used in RTW documents.
// RestBreak and HoursMin are empty/zero at level 4, which has no
// restrictions beyond standard WHS requirements.
type DutyLevel struct {
	Level        int      `json:"level"`
	Title        string   `json:"title"`
	Purpose      string   `json:"purpose"`
	Duties       []string `json:"duties"`
	Restrictions []string `json:"restrictions"`
	HoursMin     int      `json:"hours_min,omitempty"`
	RestBreak    string   `json:"rest_break,omitempty"`
}

// SuitableDuties returns the definition for a level, clamping out-of
// range input to the nearest defined tier.
func SuitableDuties(level int) DutyLevel {
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	return dutyLevels[level-1]
}

// AllDutyLevels returns the four tiers in order.
func AllDutyLevels() []DutyLevel {
	out := make([]DutyLevel, len(dutyLevels))
	copy(out, dutyLevels)
	return out
}

var dutyLevels = []DutyLevel{
	{
		Level:   1,
		Title:   "Level 1 - Seated / Observational Duties (Initial Capacity)",
		Purpose: "Maintain workplace engagement while minimising physical demand and preventing aggravation of injury",
		Duties: []string{
			"Seated training (theoretical, procedural, or safety-based)",
			"On-site walkthroughs for observation purposes only",
			"Job observation and task familiarisation",
			"Supervision and oversight of other employees",
			"Quality assurance checks and error identification",
			"Review of procedures, inductions, and Safe Work Method Statements",
			"Administrative or reporting tasks related to cleaning operations",
		},
		Restrictions: []string{
			"No cleaning duties",
			"No lifting, pushing, pulling, or carrying",
			"No repetitive movements",
			"No prolonged standing or walking",
			"No use of tools, machinery, or chemicals",
		},
		HoursMin:  3,
		RestBreak: "15 minutes at regular 1-hour intervals",
	},
	{
		Level:   2,
		Title:   "Level 2 - Modified Duties (Low Physical Demand)",
		Purpose: "Introduce very light, controlled physical activity while remaining within medical restrictions",
		Duties: []string{
			"Wiping down and drying machinery and equipment",
			"Cleaning and drying benchtops and surfaces",
			"Light scrubbing and scouring tasks",
			"Waterproofing machinery",
			"Amenities cleaning - replacing bin liners, cleaning toilets/sinks/amenities fixtures",
			"General cleaning tasks that can be performed one-handed, at waist height, or with minimal standing",
		},
		Restrictions: []string{
			"No heavy scrubbing",
			"No lifting or carrying of items",
			"No bending below knee height",
			"No overhead work",
			"No dismantling of machinery",
			"No mopping",
			"No use of high-pressure equipment",
		},
		HoursMin:  3,
		RestBreak: "15 minutes at regular 1-hour intervals",
	},
	{
		Level:   3,
		Title:   "Level 3 - Modified Duties (Moderate Physical Demand)",
		Purpose: "Progressively rebuild functional capacity and tolerance to work activities",
		Duties: []string{
			"All duties listed under Level 2",
			"Dismantling machinery prior to cleaning (e.g., removal of plate covers)",
			"Carrying chemicals or equipment up to approximately 0-7 kilograms",
			"Heavier scrubbing tasks",
			"Cleaning of lower sections of machinery and equipment",
			"Mopping / sweeping of floors",
			"Increased range of movement and coverage of cleaning areas",
		},
		Restrictions: []string{
			"No use of high-pressure hoses",
			"No confined space entry",
			"No working at heights",
			"No prolonged repetitive tasks without appropriate rest breaks",
			"No lifting beyond medically certified limits",
		},
		HoursMin:  3,
		RestBreak: "15 minutes at regular 2-hour intervals",
	},
	{
		Level:   4,
		Title:   "Level 4 - Pre-Injury Duties (Full Capacity)",
		Purpose: "Return to full duties consistent with worker's pre-injury role",
		Duties: []string{
			"All standard cleaning duties as per employee's position description",
			"Use of high-pressure hoses",
			"High cleaning tasks (where required)",
			"Confined space cleaning (where required)",
			"Full manual handling tasks",
			"Full use of tools, equipment, and chemicals",
			"Normal shift duration, workload, and pace",
		},
		Restrictions: []string{
			"Nil, other than standard workplace health and safety requirements",
		},
	},
}
