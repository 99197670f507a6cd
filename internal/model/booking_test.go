package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

func TestBookingInputValidate(t *testing.T) {
	valid := model.BookingInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Date:     "2025-06-10",
		Time:     "13:00",
		Duration: 30,
	}

	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("notes are optional", func(t *testing.T) {
		in := valid
		in.Notes = ""
		assert.NoError(t, in.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*model.BookingInput)
	}{
		{"empty name", func(in *model.BookingInput) { in.Name = "" }},
		{"email without at sign", func(in *model.BookingInput) { in.Email = "jane.example.com" }},
		{"email without domain dot", func(in *model.BookingInput) { in.Email = "jane@example" }},
		{"email with spaces", func(in *model.BookingInput) { in.Email = "jane doe@example.com" }},
		{"malformed date", func(in *model.BookingInput) { in.Date = "10-06-2025" }},
		{"malformed time", func(in *model.BookingInput) { in.Time = "25:99" }},
		{"zero duration", func(in *model.BookingInput) { in.Duration = 0 }},
		{"negative duration", func(in *model.BookingInput) { in.Duration = -30 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.Error(t, in.Validate())
		})
	}
}
