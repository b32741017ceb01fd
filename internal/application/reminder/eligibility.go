package reminder

import "github.com/go-med-reminder/internal/domain"

// IsMedicationEligible reports whether a medication should be considered for
// reminders. Only explicitly false flags disqualify; absent flags do not.
func IsMedicationEligible(m *domain.Medication) bool {
	if m == nil {
		return false
	}
	if m.IsActive.IsExplicitlyFalse() || m.NotificationsEnabled.IsExplicitlyFalse() {
		return false
	}
	return m.Time.Trimmed() != ""
}
