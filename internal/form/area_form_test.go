package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/service"
)

func TestNew_Defaults(t *testing.T) {
	f := New()

	assert.Equal(t, Values{Bookable: true, BookableOnline: true, BookingPriority: "5"}, f.Values)
	assert.Equal(t, ActionAdded, f.Action())
	assert.Equal(t, service.OpInsert, f.Operation())
	assert.Equal(t, "settings.tables.area.added", f.SuccessMessageKey())
}

func TestFromArea_KeepsStoredFlags(t *testing.T) {
	f := FromArea(model.SeatingArea{
		ID:             "A1",
		Name:           "Patio",
		Bookable:       false,
		BookableOnline: false,
		Note:           "n",
		InternalNote:   "i",
	})

	assert.False(t, f.Values.Bookable)
	assert.False(t, f.Values.BookableOnline)
	assert.Equal(t, "5", f.Values.BookingPriority)
	assert.Equal(t, "Patio", f.Values.Name)
	assert.Equal(t, ActionUpdated, f.Action())
	assert.Equal(t, "settings.tables.area.updated", f.SuccessMessageKey())
	assert.Equal(t, "settings.tables.area.edit", f.Descriptor(false).TitleKey)
}

func TestDescriptor_ReserveWithGoogle(t *testing.T) {
	f := New()

	assert.False(t, f.Descriptor(false).RwgSuccess)
	d := f.Descriptor(true)
	assert.True(t, d.RwgSuccess)
	assert.Equal(t, "settings.tables.area.added", d.SuccessMessageKey)
}

func TestChange(t *testing.T) {
	f := New()

	require.NoError(t, f.Change("name", "Bar"))
	require.NoError(t, f.Change("booking_priority", "8"))
	require.NoError(t, f.Change("bookable", "false"))
	require.NoError(t, f.Change("internal_note", "keep quiet"))

	assert.Equal(t, "Bar", f.Values.Name)
	assert.Equal(t, "8", f.Values.BookingPriority)
	assert.False(t, f.Values.Bookable)
	assert.Equal(t, "keep quiet", f.Values.InternalNote)

	assert.Error(t, f.Change("bookable_online", "maybe"))
	assert.Error(t, f.Change("color", "red"))
}

func TestSubmission(t *testing.T) {
	tests := []struct {
		name       string
		bookable   bool
		online     bool
		wantOnline bool
	}{
		{"both on", true, true, true},
		{"online needs bookable", false, true, false},
		{"online off", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			f.Values.Name = "Bar"
			f.Values.Bookable = tt.bookable
			f.Values.BookableOnline = tt.online
			f.Values.BookingPriority = "7"

			in, err := f.Submission()
			require.NoError(t, err)
			require.NoError(t, in.Validate(f.Operation()))
			assert.Equal(t, tt.bookable, *in.Bookable)
			assert.Equal(t, tt.wantOnline, *in.BookableOnline)
			assert.Equal(t, 7, *in.BookingPriority)
		})
	}
}

func TestSubmission_NonNumericPriority(t *testing.T) {
	f := FromArea(model.SeatingArea{ID: "A1", Name: "Bar", BookingPriority: 3})
	require.NoError(t, f.Change("booking_priority", "high"))

	_, err := f.Submission()

	var se *service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.KindValidation, se.Kind)
	assert.Equal(t, service.OpUpdate, se.Op)
}

func TestTextsFor(t *testing.T) {
	area := TextsFor(ForArea)
	assert.Equal(t, "settings.tables.area.name", area.NameLabel)
	assert.Equal(t, "settings.tables.area.bookable_online_help", area.BookableOnlineHelp)
	assert.Equal(t, "common.error.required", area.NameError)

	table := TextsFor(ForTable)
	assert.Equal(t, "settings.tables.priority", table.BookingPriorityLabel)

	assert.Equal(t, Texts{}, TextsFor("chair"))
}

func TestPriorityOptions(t *testing.T) {
	opts := PriorityOptions()

	require.Len(t, opts, 10)
	assert.Equal(t, PriorityOption{Value: "10", Qualifier: "common.high"}, opts[0])
	assert.Equal(t, PriorityOption{Value: "5", Qualifier: "common.medium"}, opts[5])
	assert.Equal(t, PriorityOption{Value: "1", Qualifier: "common.low"}, opts[9])
	assert.Empty(t, opts[1].Qualifier)
}
