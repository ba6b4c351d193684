// Package form models the seating area edit dialog on the server: its
// defaults, how it is populated from a stored area, field changes and the
// document it submits to insert or update.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/service"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"

	// ErrorMessageKey is shown for any failed submission.
	ErrorMessageKey = "common.error.something_went_wrong"

	defaultPriority = "5"

	// ReserveWithGoogleApp is the restaurant app whose success message
	// variant the client shows after saving.
	ReserveWithGoogleApp = "reserveWithGoogle"
)

// Values is the editable state.  BookingPriority is kept as the select's
// text value and parsed on submission.
type Values struct {
	Name            string `json:"name"`
	Bookable        bool   `json:"bookable"`
	BookableOnline  bool   `json:"bookable_online"`
	BookingPriority string `json:"booking_priority"`
	Note            string `json:"note"`
	InternalNote    string `json:"internal_note"`
}

// AreaForm is the state of one add or edit dialog.  AreaID is empty for a
// new area.
type AreaForm struct {
	AreaID string
	Values Values
}

// New returns the form for a new area.
func New() *AreaForm {
	return &AreaForm{Values: Values{
		Bookable:        true,
		BookableOnline:  true,
		BookingPriority: defaultPriority,
	}}
}

// FromArea returns the form editing a. Stored flags are kept as stored; a
// zero priority falls back to the default.
func FromArea(a model.SeatingArea) *AreaForm {
	f := New()
	f.AreaID = a.ID
	f.Values.Name = a.Name
	f.Values.Bookable = a.Bookable
	f.Values.BookableOnline = a.BookableOnline
	if a.BookingPriority != 0 {
		f.Values.BookingPriority = itoa(a.BookingPriority)
	}
	f.Values.Note = a.Note
	f.Values.InternalNote = a.InternalNote
	return f
}

// Change sets one field from its text form.  Switch fields accept the
// values strconv.ParseBool does.
func (f *AreaForm) Change(field, value string) error {
	switch field {
	case "name":
		f.Values.Name = value
	case "note":
		f.Values.Note = value
	case "internal_note":
		f.Values.InternalNote = value
	case "booking_priority":
		f.Values.BookingPriority = value
	case "bookable", "bookable_online":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("form: %s: %q is not a boolean", field, value)
		}
		if field == "bookable" {
			f.Values.Bookable = b
		} else {
			f.Values.BookableOnline = b
		}
	default:
		return fmt.Errorf("form: unknown field %q", field)
	}
	return nil
}

// Action is "updated" when editing a stored area and "added" otherwise.
func (f *AreaForm) Action() string {
	if f.AreaID != "" {
		return ActionUpdated
	}
	return ActionAdded
}

// Operation is the service operation the form submits to.
func (f *AreaForm) Operation() string {
	if f.AreaID != "" {
		return service.OpUpdate
	}
	return service.OpInsert
}

// SuccessMessageKey is shown after a successful submission.
func (f *AreaForm) SuccessMessageKey() string {
	return "settings.tables.area." + f.Action()
}

// BookableOnlineEffective is what the online switch displays.
func (f *AreaForm) BookableOnlineEffective() bool {
	return f.Values.Bookable && f.Values.BookableOnline
}

// Submission builds the insert or update document.  A priority that is
// not an integer is a validation error of the form's operation.
func (f *AreaForm) Submission() (service.SeatingAreaInput, error) {
	v := f.Values
	priority, err := strconv.Atoi(strings.TrimSpace(v.BookingPriority))
	if err != nil {
		return service.SeatingAreaInput{}, service.NewValidationError(f.Operation(),
			fmt.Sprintf("booking_priority %q is not a number", v.BookingPriority))
	}
	online := f.BookableOnlineEffective()
	return service.SeatingAreaInput{
		Name:            &v.Name,
		Bookable:        &v.Bookable,
		BookableOnline:  &online,
		BookingPriority: &priority,
		Note:            &v.Note,
		InternalNote:    &v.InternalNote,
	}, nil
}

// Descriptor is the JSON document the form endpoints serve.
type Descriptor struct {
	AreaID            string           `json:"area_id,omitempty"`
	TitleKey          string           `json:"title_key"`
	Action            string           `json:"action"`
	Operation         string           `json:"operation"`
	Values            Values           `json:"values"`
	BookableOnlineOn  bool             `json:"bookable_online_effective"`
	Texts             Texts            `json:"texts"`
	NoteLabelKey      string           `json:"note_label_key"`
	NoteHelpKey       string           `json:"note_help_key"`
	PriorityOptions   []PriorityOption `json:"priority_options"`
	SaveKey           string           `json:"save_key"`
	CancelKey         string           `json:"cancel_key"`
	SuccessMessageKey string           `json:"success_message_key"`
	RwgSuccess        bool             `json:"rwg_success"`
	ErrorMessageKey   string           `json:"error_message_key"`
}

// Descriptor describes the dialog for the client.  rwg marks a restaurant
// with Reserve with Google active; the client then wraps the success
// message in its Reserve with Google snackbar.
func (f *AreaForm) Descriptor(rwg bool) Descriptor {
	title := "settings.tables.area.add"
	if f.AreaID != "" {
		title = "settings.tables.area.edit"
	}
	return Descriptor{
		AreaID:            f.AreaID,
		TitleKey:          title,
		Action:            f.Action(),
		Operation:         f.Operation(),
		Values:            f.Values,
		BookableOnlineOn:  f.BookableOnlineEffective(),
		Texts:             TextsFor(ForArea),
		NoteLabelKey:      "settings.tables.area.note",
		NoteHelpKey:       "settings.tables.area.note_help",
		PriorityOptions:   PriorityOptions(),
		SaveKey:           "common.save",
		CancelKey:         "common.cancel",
		SuccessMessageKey: f.SuccessMessageKey(),
		RwgSuccess:        rwg,
		ErrorMessageKey:   ErrorMessageKey,
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
