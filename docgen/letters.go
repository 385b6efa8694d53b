/*
letters.go - Letter to Worker, RTW Information, Letter to Doctor
*/
package docgen

import (
	"fmt"
	"time"

	"github.com/sga/workcover-engine/claims"
)

// =============================================================================
// LETTER TO WORKER
// =============================================================================

func letterToWorkerFields(c *claims.Case, today time.Time) FieldMap {
	return FieldMap{
		"worker_name":  Text(c.WorkerName),
		"worker_first": Text(firstName(c.WorkerName)),
		"claim_number": Text(c.ClaimNumber),
		"date":         Static(today.Format("02/01/2006")),
		"coordinator":  Static(Coordinator.Name),
	}
}

func renderLetterToWorker(c *claims.Case, today time.Time) ([]byte, error) {
	fm := letterToWorkerFields(c, today)
	p := newPDF()

	p.fieldTable([]fieldRow{
		{"WORKER NAME:", fm["worker_name"]},
		{"CLAIM NUMBER:", fm["claim_number"]},
		{"DATE:", fm["date"]},
		{"RTW COORDINATOR:", fm["coordinator"]},
	})

	p.title("Recovery and Return to Work")

	p.para(fmt.Sprintf("Dear %s,", fm["worker_first"].Render()))
	p.para(fmt.Sprintf(
		"%s is committed to supporting your recovery and return to safe, suitable and "+
			"sustainable employment following your workplace injury. We have developed Return "+
			"to Work Arrangements based on available medical information and in consultation "+
			"with you and your treating health practitioner.", EmployerShort))

	p.heading("What do I need to do?")
	p.bullets([]string{
		"Please read the Return to Work Arrangements attached",
		"Discuss the Return to Work Arrangements with your doctor",
		"Provide feedback on the Return to Work Arrangements",
		"Sign second page if satisfied and return a copy",
	})

	p.para("A copy of this letter has been sent to your doctor(s).")
	p.para("If you have any questions or concerns, please don't hesitate to contact me.")
	p.para("Kind regards,")
	p.gap()

	p.subheading(Coordinator.Name)
	p.para(fmt.Sprintf("%s\nPhone: %s\nEmail: %s\n%s",
		Coordinator.Role, Coordinator.Phone, Coordinator.Email, Coordinator.Address))

	return p.bytes()
}

// =============================================================================
// RTW INFORMATION
// =============================================================================

func rtwInformationFields(c *claims.Case) FieldMap {
	agent := AgentFor(c.State)
	return FieldMap{
		"state":         Static(c.State),
		"agent_name":    Static(agent.Name),
		"agent_phone":   Static(agent.Phone),
		"agent_web":     Static(agent.Web),
		"agent_address": Static(agent.Address),
	}
}

var rtwObligations = []struct {
	heading string
	body    string
}{
	{
		"Make return to work information available",
		EmployerShort + " will make return to work information available to workers about: " +
			"the obligations of the employer under the legislation; the rights and obligations " +
			"of workers under the legislation; the name and contact details of the authorised " +
			"Agent; the name and contact details of the Return to Work Coordinator; and the " +
			"procedure for resolving return to work issues.",
	},
	{
		"Provide employment",
		EmployerShort + " will provide suitable employment to an injured worker (if they have " +
			"current work capacity) or pre-injury employment (if no longer incapacitated) for " +
			"52 weeks of incapacity from the date of the Certificate of Capacity or Worker's " +
			"Injury Claim Form.",
	},
	{
		"Plan return to work",
		EmployerShort + " will commence return to work planning from receipt of the Worker's " +
			"Injury Claim Form or initial Certificate of Capacity. As part of planning, the " +
			"employer will obtain relevant information about the injured worker's capacity for " +
			"work, consider reasonable workplace support, aids or modifications, assess and " +
			"propose options for suitable or pre-injury employment, engage in consultation " +
			"about return to work, provide clear, accurate and current details of return to " +
			"work arrangements, and monitor the worker's progress as often as necessary.",
	},
	{
		"Consult about the return to work of a worker",
		EmployerShort + " will consult with the worker, treating health practitioner (with " +
			"consent), and occupational rehabilitation provider (if involved). The worker may " +
			"be represented, assisted and supported during the return to work process.",
	},
	{
		"Nominate and appoint a Return to Work Coordinator",
		EmployerShort + " has nominated and appointed a Return to Work Coordinator at all " +
			"times, who has the appropriate level of seniority and is competent to assist the " +
			"employer meet its obligations.",
	},
}

func renderRTWInformation(c *claims.Case) ([]byte, error) {
	fm := rtwInformationFields(c)
	p := newPDF()

	p.title("Important Return to Work Information")

	p.heading(fmt.Sprintf("%s return to work obligations under Workers' Compensation legislation", EmployerShort))
	p.para(fmt.Sprintf(
		"%s has obligations under workers' compensation legislation. This document outlines "+
			"how %s will meet these obligations and your rights and obligations as a worker.",
		EmployerShort, EmployerShort))

	p.heading(fmt.Sprintf("How %s will meet its obligations", EmployerShort))
	for _, o := range rtwObligations {
		p.subheading(o.heading)
		p.para(o.body)
	}

	p.heading("Worker's return to work rights and obligations")
	p.subheading("Injured worker rights:")
	p.bullets([]string{
		"Be provided with return to work information and be consulted about how that information is made available",
		"Be provided with suitable employment (if you have current work capacity) or pre-injury employment (if no longer incapacitated) for 52 weeks",
		"Be consulted about planning return to work",
		"Be provided with clear, accurate and current details of return to work arrangements",
		"Be represented, assisted and supported during any stage of the return to work process",
	})

	p.subheading("Injured worker's obligations:")
	p.bullets([]string{
		"Make reasonable efforts to actively participate and cooperate in planning for return to work",
		"Make reasonable efforts to return to work in suitable or pre-injury employment",
		"Actively use occupational rehabilitation services if provided",
		"Actively participate and cooperate in assessments of capacity and rehabilitation progress",
		"Attempt to resolve return to work issues in accordance with the agreed procedure",
	})

	p.para("If a worker does not comply with these obligations, weekly payments may be suspended, terminated or ceased.")

	p.heading("Where to get help")
	p.subheading("Our Return to Work Coordinator:")
	p.para(fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nAddress: %s",
		Coordinator.Name, Coordinator.Phone, Coordinator.Email, Coordinator.Address))

	p.subheading("Our Authorised Agent:")
	p.para(fmt.Sprintf("Name: %s\nPhone: %s\nWeb: %s\nAddress: %s",
		fm["agent_name"].Render(), fm["agent_phone"].Render(),
		fm["agent_web"].Render(), fm["agent_address"].Render()))

	if c.State == "VIC" {
		p.subheading("WorkSafe Victoria:")
		p.para("Phone: 1800 136 089\nWeb: worksafe.vic.gov.au\nEmail: info@worksafe.vic.gov.au")
	}

	return p.bytes()
}

// =============================================================================
// LETTER TO DOCTOR
// =============================================================================

func letterToDoctorFields(c *claims.Case, aux Aux, today time.Time) FieldMap {
	agent := AgentFor(c.State)
	return FieldMap{
		"worker_name":    Text(c.WorkerName),
		"claim_number":   Text(c.ClaimNumber),
		"date":           Static(today.Format("02/01/2006")),
		"doctor_name":    TextHint(aux.doctor("doctor_name"), "Doctor Name"),
		"doctor_address": TextHint(aux.doctor("doctor_address"), "Doctor Address"),
		"claims_manager": TextOrReview(aux.doctor("claims_manager"), "Claims Manager, "+agent.Name),
	}
}

func renderLetterToDoctor(c *claims.Case, aux Aux, today time.Time) ([]byte, error) {
	fm := letterToDoctorFields(c, aux, today)
	p := newPDF()

	p.fieldTable([]fieldRow{
		{"Claim Number:", fm["claim_number"]},
		{"Worker Name:", fm["worker_name"]},
		{"Employer Name:", Static(EmployerShort)},
	})

	p.title("Letter to GP/Physio/Psychologist re RTW")
	p.para(fm["date"].Render())

	p.para(fm["doctor_name"].Render() + "\n" + fm["doctor_address"].Render())
	p.para(fmt.Sprintf("Dear %s,", fm["doctor_name"].Render()))

	p.subheading(fmt.Sprintf("Re: Supporting your patient's recovery and return to work - %s",
		fm["worker_name"].Render()))
	p.para(fmt.Sprintf(
		"%s is committed to supporting the recovery of %s and their return to safe, suitable "+
			"and sustainable employment. As per the signed authority on the claim form, we have "+
			"developed return to work arrangements for your patient and would appreciate your "+
			"review.", EmployerShort, fm["worker_name"].Render()))

	p.heading("What do I need to do?")
	p.bullets([]string{
		"Review the Return to Work Arrangements attached",
		"Discuss the Return to Work Arrangements with your patient",
		"Provide feedback on the Return to Work Arrangements",
		"Sign second page if satisfied and email/mail a copy back to us",
	})

	p.para("If you have any questions or concerns, please don't hesitate to contact me.")
	p.para("Kind regards,")
	p.gap()

	p.subheading(Coordinator.Name)
	p.para(fmt.Sprintf("%s\n%s\nPhone: %s\nEmail: %s\n%s",
		Coordinator.Role, EmployerName, Coordinator.Phone, Coordinator.Email, Coordinator.Address))

	p.para("encl. Signed authority on the Worker Injury Claim Form")
	p.para("cc: " + fm["claims_manager"].Render())

	return p.bytes()
}
