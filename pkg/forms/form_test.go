package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/forms"
)

func TestNewForm(t *testing.T) {
	t.Parallel()

	_, err := forms.NewForm("f", forms.Field{Name: "a"}, forms.Field{Name: "a"})
	assert.ErrorIs(t, err, forms.ErrInvalidForm)

	_, err = forms.NewForm("f", forms.Field{})
	assert.ErrorIs(t, err, forms.ErrInvalidForm)

	assert.Panics(t, func() { forms.MustForm("f", forms.Field{}) })
}

func TestForm_Input(t *testing.T) {
	t.Parallel()

	form := forms.ContactForm()
	require.NoError(t, form.SetError(forms.FieldPhone, "Please enter a valid phone number"))

	stored, err := form.Input(forms.FieldPhone, "555123")
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-", stored)

	f, _ := form.Field(forms.FieldPhone)
	assert.False(t, f.Invalid, "input clears the error")
	assert.Empty(t, f.Error)

	stored, _ = form.Input(forms.FieldPhone, stored+"4567")
	assert.Equal(t, "(555) 123-4567", stored)

	stored, _ = form.Input(forms.FieldFirstName, "  Jane ")
	assert.Equal(t, "  Jane ", stored, "only telephone input is reformatted")

	_, err = form.Input("missing", "x")
	assert.ErrorIs(t, err, forms.ErrUnknownField)
}

func TestForm_SetBypassesFormatting(t *testing.T) {
	t.Parallel()

	form := forms.ContactForm()
	require.NoError(t, form.Set(forms.FieldPhone, "5551234567"))
	assert.Equal(t, "5551234567", form.Value(forms.FieldPhone))
}

func TestForm_ResetAndClear(t *testing.T) {
	t.Parallel()

	form := forms.ContactForm()
	require.NoError(t, form.Set(forms.FieldFirstName, "Jane"))
	require.NoError(t, form.SetError(forms.FieldEmail, "bad"))

	form.Reset()
	assert.Equal(t, "", form.Value(forms.FieldFirstName))
	assert.Len(t, form.Errors(), 1)

	form.ClearErrors()
	assert.Empty(t, form.Errors())
	_, ok := form.FirstInvalid()
	assert.False(t, ok)
}

func TestForm_CopiesAreIsolated(t *testing.T) {
	t.Parallel()

	form := forms.AppointmentForm(nil)
	f, ok := form.Field(forms.FieldDoctor)
	require.True(t, ok)
	f.Choices[0].Label = "changed"
	f.Value = "changed"

	again, _ := form.Field(forms.FieldDoctor)
	assert.Equal(t, "Select Doctor", again.Choices[0].Label)
	assert.Equal(t, "", again.Value)
}

func TestForm_Values(t *testing.T) {
	t.Parallel()

	form := forms.ContactForm()
	require.NoError(t, form.Set(forms.FieldFirstName, "  Jane  "))
	values := form.Values()
	assert.Equal(t, "Jane", values[forms.FieldFirstName])
	assert.Len(t, values, 6)
}

func TestAppointmentForm(t *testing.T) {
	t.Parallel()

	form := forms.AppointmentForm([]forms.Choice{{Value: "cardiology", Label: "Cardiology"}})

	dept, _ := form.Field(forms.FieldDepartment)
	assert.Equal(t, []forms.Choice{{Value: "", Label: "Select Department"}, {Value: "cardiology", Label: "Cardiology"}}, dept.Choices)
	assert.Equal(t, "Cardiology", dept.ChoiceLabel("cardiology"))
	assert.Equal(t, "unknown", dept.ChoiceLabel("unknown"))

	doctor, _ := form.Field(forms.FieldDoctor)
	assert.True(t, doctor.Disabled)
	assert.False(t, doctor.Required)
	assert.Equal(t, "Select a department first to see available doctors", doctor.Help)

	slot, _ := form.Field(forms.FieldAppointmentTime)
	assert.Equal(t, forms.Choice{Value: "09:00", Label: "9:00 AM"}, slot.Choices[1])
	assert.Equal(t, forms.Choice{Value: "16:00", Label: "4:00 PM"}, slot.Choices[len(slot.Choices)-1])
	for _, c := range slot.Choices {
		assert.NotEqual(t, "12:00", c.Value)
	}
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Monday, June 10, 2024", forms.FormatDate("2024-06-10"))
	assert.Equal(t, "soon", forms.FormatDate("soon"))
	assert.Equal(t, "2:30 PM", forms.FormatTime("14:30"))
	assert.Equal(t, "9:00 AM", forms.FormatTime("09:00"))
	assert.Equal(t, "noon", forms.FormatTime("noon"))
}
