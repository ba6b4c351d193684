package form

// ControlFor selects the label set of the shared controls: the same name,
// priority, note and bookable controls are used by the area and the table
// forms.
type ControlFor string

const (
	ForArea  ControlFor = "area"
	ForTable ControlFor = "table"
)

// Texts holds the i18n keys of the shared controls.  Keys are resolved by
// the client.
type Texts struct {
	NameLabel                 string `json:"name_label"`
	NameHelperText            string `json:"name_helper_text"`
	NameError                 string `json:"name_error"`
	BookingPriorityLabel      string `json:"booking_priority_label"`
	BookingPriorityHelperText string `json:"booking_priority_helper_text"`
	InternalNoteLabel         string `json:"internal_note_label"`
	InternalNoteHelperText    string `json:"internal_note_helper_text"`
	BookableLabel             string `json:"bookable_label"`
	BookableOnlineLabel       string `json:"bookable_online_label"`
	BookableHelp              string `json:"bookable_help"`
	BookableOnlineHelp        string `json:"bookable_online_help"`
}

// TextsFor returns the keys for c, or empty keys when c is unknown.
func TextsFor(c ControlFor) Texts {
	var prefix string
	switch c {
	case ForArea:
		prefix = "settings.tables.area."
	case ForTable:
		prefix = "settings.tables."
	default:
		return Texts{}
	}
	return Texts{
		NameLabel:                 prefix + "name",
		NameHelperText:            prefix + "name_help",
		NameError:                 "common.error.required",
		BookingPriorityLabel:      prefix + "priority",
		BookingPriorityHelperText: prefix + "priority_help",
		InternalNoteLabel:         prefix + "internal_note",
		InternalNoteHelperText:    prefix + "internal_note_help",
		BookableLabel:             prefix + "bookable",
		BookableOnlineLabel:       prefix + "bookable_online",
		BookableHelp:              prefix + "bookable_help",
		BookableOnlineHelp:        prefix + "bookable_online_help",
	}
}

// PriorityOption is one entry of the booking priority select.
type PriorityOption struct {
	Value     string `json:"value"`
	Qualifier string `json:"qualifier,omitempty"`
}

// PriorityOptions lists priorities from 10 down to 1; the ends and the
// middle carry a qualifier key.
func PriorityOptions() []PriorityOption {
	opts := make([]PriorityOption, 0, 10)
	for p := 10; p >= 1; p-- {
		opt := PriorityOption{Value: itoa(p)}
		switch p {
		case 10:
			opt.Qualifier = "common.high"
		case 5:
			opt.Qualifier = "common.medium"
		case 1:
			opt.Qualifier = "common.low"
		}
		opts = append(opts, opt)
	}
	return opts
}
