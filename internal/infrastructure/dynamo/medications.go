package dynamo

import (
	"context"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
)

// MedicationRepo reads the medications table (PK user_id, SK medication_id).
type MedicationRepo struct {
	client    API
	tableName string
}

func NewMedicationRepo(client API, tableName string) *MedicationRepo {
	return &MedicationRepo{client: client, tableName: tableName}
}

// ListByUser returns all medications of a user, in no particular order.
func (r *MedicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Medication, error) {
	meds, err := queryAllByUser[domain.Medication](ctx, r.client, r.tableName, userID)
	if err != nil {
		return nil, fmt.Errorf("query medications: %w", err)
	}
	return meds, nil
}
