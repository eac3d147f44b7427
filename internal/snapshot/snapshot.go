// Package snapshot keeps a serialized copy of the store in the local database so the
// client can show the last known data before the first refresh completes.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sample-tracker-client/internal/model"
	"sample-tracker-client/internal/store"
)

// Repository reads and writes named store snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on an initialized database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the snapshot saved under name. found is false when there is none.
func (r *Repository) Load(ctx context.Context, name string) (data store.AppData, found bool, err error) {
	var row model.Snapshot
	err = r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.AppData{}, false, nil
	}
	if err != nil {
		return store.AppData{}, false, fmt.Errorf("failed to read snapshot %q: %w", name, err)
	}

	if err := json.Unmarshal(row.Payload, &data); err != nil {
		return store.AppData{}, false, fmt.Errorf("failed to decode snapshot %q: %w", name, err)
	}
	return data, true, nil
}

// Save writes data under name, replacing any previous snapshot.
func (r *Repository) Save(ctx context.Context, name string, data store.AppData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	row := model.Snapshot{Name: name, Payload: payload}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", name, err)
	}
	return nil
}
