package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMedicationTime(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
		ok   bool
	}{
		{"2:30 PM", TimeOfDay{14, 30}, true},
		{"14:30", TimeOfDay{14, 30}, true},
		{" 9:05am ", TimeOfDay{9, 5}, true},
		{"12:00 AM", TimeOfDay{0, 0}, true},
		{"12:15 PM", TimeOfDay{12, 15}, true},
		{"09:00", TimeOfDay{9, 0}, true},
		{"25:99", TimeOfDay{23, 59}, true},
		{"13:10 PM", TimeOfDay{13, 10}, true},
		{"not a time", TimeOfDay{}, false},
		{"9", TimeOfDay{}, false},
		{"9:5", TimeOfDay{}, false},
		{"", TimeOfDay{}, false},
	}
	for _, c := range cases {
		got, ok := ParseMedicationTime(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseMedicationTime_FormatsAgree(t *testing.T) {
	a, ok := ParseMedicationTime("2:30 PM")
	assert.True(t, ok)
	b, ok := ParseMedicationTime("14:30")
	assert.True(t, ok)
	assert.Equal(t, a, b)
	assert.Equal(t, "14:30", a.String())
}
