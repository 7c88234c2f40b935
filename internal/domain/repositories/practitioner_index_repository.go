package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// PractitionerIndexRepository is the typeahead suggestion index. Indexing is
// best-effort; callers log failures and move on.
type PractitionerIndexRepository interface {
	Index(ctx context.Context, record *entities.PractitionerRecord) error

	Suggest(ctx context.Context, prefix string, limit int) ([]*entities.PractitionerRecord, error)
}
