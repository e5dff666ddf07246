package commands

import (
	"context"

	"slot-reservation/internal/pkg/catalogfile"
	"slot-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// SeedCatalog creates every item through the catalog so seeded resources get
// ids and slots exactly like API-created ones. It stops at the first failure
// and returns how many were created before it.
func SeedCatalog(ctx context.Context, catalog CatalogCommands, ownerID uuid.UUID, items []catalogfile.Item) (int, error) {
	for i, item := range items {
		if _, err := catalog.CreateResource(ctx, item.Type, ownerID, item.Descriptor); err != nil {
			return i, errs.Wrapf(err, "seed %s %q", item.Type, item.Descriptor.Name)
		}
	}
	return len(items), nil
}
