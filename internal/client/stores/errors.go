package stores

import (
	"fmt"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

func invalidStatus(s models.AppointmentStatus) error {
	return fmt.Errorf("%w: unknown appointment status %q", models.ErrInvalidPayload, s)
}
