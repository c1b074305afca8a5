package component

import "fmt"

// InputType identifies the control rendered for a form input.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
	InputNumber   InputType = "number"
	InputSelect   InputType = "select"
	InputSubmit   InputType = "submit"
	InputReset    InputType = "reset"
	InputCheckbox InputType = "checkbox"
	InputRadio    InputType = "radio"
)

// FormInput is the base control all typed inputs embed. Inputs without a
// dedicated template fall back to the FormInput template through the
// embedded-type lookup chain.
type FormInput struct {
	Meta
	ID       string    `json:"id,omitempty"`
	Type     InputType `json:"type"`
	Label    any       `json:"label,omitempty"`
	AddBreak bool      `json:"add_break,omitempty"`
	Required bool      `json:"required"`
}

// TextInput renders a single-line text control.
type TextInput struct {
	FormInput
}

// NewTextInput builds a required text input named id.
func NewTextInput(id, label string) TextInput {
	return TextInput{FormInput{ID: id, Type: InputText, Label: label, Required: true}}
}

// EmailInput renders an email control.
type EmailInput struct {
	FormInput
}

// NewEmailInput builds a required email input named id.
func NewEmailInput(id, label string) EmailInput {
	return EmailInput{FormInput{ID: id, Type: InputEmail, Label: label, Required: true}}
}

// PasswordInput renders a password control.
type PasswordInput struct {
	FormInput
}

// NewPasswordInput builds a required password input named id.
func NewPasswordInput(id, label string) PasswordInput {
	return PasswordInput{FormInput{ID: id, Type: InputPassword, Label: label, Required: true}}
}

// NumberInput renders a numeric control.
type NumberInput struct {
	FormInput
}

// NewNumberInput builds a required number input named id.
func NewNumberInput(id, label string) NumberInput {
	return NumberInput{FormInput{ID: id, Type: InputNumber, Label: label, Required: true}}
}

// InputOption is a selectable value for select and radio controls.
type InputOption struct {
	Value string `json:"value"`
	Label any    `json:"label"`
}

// SelectInput renders a select element. Selected and Disabled may be set
// after construction; Validate checks they reference known options.
type SelectInput struct {
	FormInput
	Options  []InputOption `json:"options"`
	Selected string        `json:"selected,omitempty"`
	Disabled []string      `json:"disabled,omitempty"`
}

// NewSelectInput builds a select control over options.
func NewSelectInput(id, label string, options ...InputOption) SelectInput {
	return SelectInput{
		FormInput: FormInput{ID: id, Type: InputSelect, Label: label, Required: true},
		Options:   options,
	}
}

// Validate checks Selected and Disabled against the option values.
func (s SelectInput) Validate() error {
	values := make(map[string]struct{}, len(s.Options))
	for _, option := range s.Options {
		values[option.Value] = struct{}{}
	}
	if s.Selected != "" {
		if _, ok := values[s.Selected]; !ok {
			return errSelectValue("selected", s.Selected)
		}
	}
	for _, value := range s.Disabled {
		if _, ok := values[value]; !ok {
			return errSelectValue("disabled", value)
		}
	}
	return nil
}

// CheckboxInput renders a checkbox control.
type CheckboxInput struct {
	FormInput
}

// NewCheckboxInput builds a checkbox named id.
func NewCheckboxInput(id, label string) CheckboxInput {
	return CheckboxInput{FormInput{ID: id, Type: InputCheckbox, Label: label}}
}

// RadioInput renders a radio group over options.
type RadioInput struct {
	FormInput
	Options []InputOption `json:"options"`
}

// NewRadioInput builds a radio group named id.
func NewRadioInput(id, label string, options ...InputOption) RadioInput {
	return RadioInput{
		FormInput: FormInput{ID: id, Type: InputRadio, Label: label, Required: true},
		Options:   options,
	}
}

// SubmitButton renders the form's submit control.
type SubmitButton struct {
	FormInput
}

// NewSubmitButton builds a submit control with an optional label.
func NewSubmitButton(label string) SubmitButton {
	return SubmitButton{FormInput{Type: InputSubmit, Label: label}}
}

// ResetButton renders the form's reset control.
type ResetButton struct {
	FormInput
}

// NewResetButton builds a reset control with an optional label.
func NewResetButton(label string) ResetButton {
	return ResetButton{FormInput{Type: InputReset, Label: label}}
}

// Form renders a form element submitting its items with verb against route.
type Form struct {
	Meta
	ID    string      `json:"id,omitempty"`
	Verb  Verb        `json:"verb"`
	Route string      `json:"route"`
	Items []Component `json:"items"`
}

func errSelectValue(field, value string) error {
	return fmt.Errorf("component: %s value %q is not one of the current options", field, value)
}
