package reminder

import (
	"testing"

	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsMedicationEligible(t *testing.T) {
	base := domain.Medication{MedicationID: "m1", Time: domain.NewText("09:00")}

	assert.True(t, IsMedicationEligible(&base), "absent flags are eligible")

	active := base
	active.IsActive = domain.NewFlag(true)
	active.NotificationsEnabled = domain.NewFlag(true)
	assert.True(t, IsMedicationEligible(&active))

	inactive := base
	inactive.IsActive = domain.NewFlag(false)
	assert.False(t, IsMedicationEligible(&inactive))

	muted := base
	muted.NotificationsEnabled = domain.NewFlag(false)
	assert.False(t, IsMedicationEligible(&muted))

	blank := base
	blank.Time = domain.NewText("   ")
	assert.False(t, IsMedicationEligible(&blank))

	missing := base
	missing.Time = domain.Text{}
	assert.False(t, IsMedicationEligible(&missing))

	assert.False(t, IsMedicationEligible(nil))
}
