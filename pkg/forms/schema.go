package forms

import (
	"time"
)

// Form identifiers.
const (
	AppointmentFormID = "appointment-form"
	ContactFormID     = "contact-form"
)

// Appointment form field names.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldDateOfBirth     = "dateOfBirth"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldDepartment      = "department"
	FieldDoctor          = "doctor"
	FieldAppointmentDate = "appointmentDate"
	FieldAppointmentTime = "appointmentTime"
	FieldAppointmentType = "appointmentType"
	FieldReason          = "reason"
	FieldEmergencyName   = "emergencyName"
	FieldEmergencyPhone  = "emergencyPhone"
	FieldSubject         = "subject"
	FieldMessage         = "message"
)

// AppointmentTypes are the choices of the appointment type select.
var AppointmentTypes = []Choice{
	{Value: "new-patient", Label: "New Patient Consultation"},
	{Value: "follow-up", Label: "Follow-up Visit"},
	{Value: "annual-checkup", Label: "Annual Checkup"},
	{Value: "urgent", Label: "Urgent Care"},
	{Value: "telehealth", Label: "Telehealth Visit"},
}

// ContactSubjects are the choices of the contact subject select.
var ContactSubjects = []Choice{
	{Value: "general", Label: "General Inquiry"},
	{Value: "appointment", Label: "Appointment Question"},
	{Value: "billing", Label: "Billing"},
	{Value: "records", Label: "Medical Records"},
	{Value: "feedback", Label: "Feedback"},
}

// AppointmentTimes are the bookable slots, on the half hour outside the lunch break.
var AppointmentTimes = func() []Choice {
	var out []Choice
	for minutes := 9 * 60; minutes <= 16*60; minutes += 30 {
		if minutes >= 12*60 && minutes < 13*60 {
			continue
		}
		t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
		out = append(out, Choice{Value: t.Format("15:04"), Label: FormatTime(t.Format("15:04"))})
	}
	return out
}()

// DoctorPlaceholder is the leading choice of the doctor select.
var DoctorPlaceholder = Choice{Value: "", Label: "Select Doctor"}

// Help texts of the doctor select.
const (
	DoctorHelpDisabled = "Select a department first to see available doctors"
	DoctorHelpEnabled  = "Select your preferred doctor from the available options"
)

// AppointmentForm builds the appointment form. Departments become the
// department choices; the doctor select starts disabled with the placeholder only.
func AppointmentForm(departments []Choice) *Form {
	return MustForm(AppointmentFormID,
		Field{Name: FieldFirstName, Label: "First Name *", Kind: KindText, Role: RoleFirstName, Required: true},
		Field{Name: FieldLastName, Label: "Last Name *", Kind: KindText, Role: RoleLastName, Required: true},
		Field{Name: FieldDateOfBirth, Label: "Date of Birth *", Kind: KindDate, Role: RoleDateOfBirth, Required: true},
		Field{Name: FieldEmail, Label: "Email Address *", Kind: KindEmail, Required: true},
		Field{Name: FieldPhone, Label: "Phone Number *", Kind: KindTel, Required: true},
		Field{Name: FieldDepartment, Label: "Department *", Kind: KindSelect, Required: true,
			Choices: append([]Choice{{Value: "", Label: "Select Department"}}, departments...)},
		Field{Name: FieldDoctor, Label: "Preferred Doctor", Kind: KindSelect, Disabled: true,
			Choices: []Choice{DoctorPlaceholder},
			Help:    DoctorHelpDisabled},
		Field{Name: FieldAppointmentDate, Label: "Preferred Date *", Kind: KindDate, Role: RoleAppointmentDate, Required: true},
		Field{Name: FieldAppointmentTime, Label: "Preferred Time *", Kind: KindSelect, Required: true,
			Choices: append([]Choice{{Value: "", Label: "Select Time"}}, AppointmentTimes...)},
		Field{Name: FieldAppointmentType, Label: "Appointment Type *", Kind: KindSelect, Required: true,
			Choices: append([]Choice{{Value: "", Label: "Select Type"}}, AppointmentTypes...)},
		Field{Name: FieldReason, Label: "Reason for Visit *", Kind: KindTextarea, Role: RoleReason, Required: true},
		Field{Name: FieldEmergencyName, Label: "Emergency Contact Name", Kind: KindText, Role: RoleEmergencyName},
		Field{Name: FieldEmergencyPhone, Label: "Emergency Contact Phone", Kind: KindTel},
	)
}

// ContactForm builds the contact form.
func ContactForm() *Form {
	return MustForm(ContactFormID,
		Field{Name: FieldFirstName, Label: "First Name *", Kind: KindText, Role: RoleFirstName, Required: true},
		Field{Name: FieldLastName, Label: "Last Name *", Kind: KindText, Role: RoleLastName, Required: true},
		Field{Name: FieldEmail, Label: "Email Address *", Kind: KindEmail, Required: true},
		Field{Name: FieldPhone, Label: "Phone Number", Kind: KindTel},
		Field{Name: FieldSubject, Label: "Subject *", Kind: KindSelect, Required: true,
			Choices: append([]Choice{{Value: "", Label: "Select Subject"}}, ContactSubjects...)},
		Field{Name: FieldMessage, Label: "Message *", Kind: KindTextarea, Role: RoleMessage, Required: true},
	)
}

// FormatDate renders a YYYY-MM-DD value as "Monday, January 2, 2006".
// Unparsable values are returned unchanged.
func FormatDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format("Monday, January 2, 2006")
}

// FormatTime renders an HH:MM value as "3:04 PM". Unparsable values are returned unchanged.
func FormatTime(value string) string {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return value
	}
	return t.Format("3:04 PM")
}
