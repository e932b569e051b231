package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// prefacturationRecord is the SQL row: indexed columns for lookups and
// filters, plus the aggregate as a JSON document.
type prefacturationRecord struct {
	ID             string     `gorm:"primaryKey;size:64"`
	OrderID        string     `gorm:"uniqueIndex;size:128;not null"`
	CarrierID      string     `gorm:"index;size:128"`
	ClientID       string     `gorm:"index;size:128"`
	Status         string     `gorm:"index;size:32"`
	WorkflowStatus string     `gorm:"index;size:32"`
	CarrierStatus  string     `gorm:"column:carrier_validation_status;size:16"`
	TimeoutAt      *time.Time `gorm:"column:carrier_timeout_at;index"`
	Version        int64      `gorm:"not null"`
	Document       string     `gorm:"type:text;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (prefacturationRecord) TableName() string { return "prefacturations" }

// PrefacturationGormRepository persists prefacturations in Postgres or SQLite.
type PrefacturationGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IPrefacturationRepository = (*PrefacturationGormRepository)(nil)

func NewPrefacturationGormRepository(db *gorm.DB) *PrefacturationGormRepository {
	return &PrefacturationGormRepository{db: db}
}

// AutoMigrate creates or updates the prefacturations table.
func (r *PrefacturationGormRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&prefacturationRecord{})
}

func (r *PrefacturationGormRepository) Create(ctx context.Context, p entities.Prefacturation) (entities.Prefacturation, error) {
	rec, err := toPrefacturationRecord(p)
	if err != nil {
		return entities.Prefacturation{}, err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.Prefacturation{}, interfaces.ErrDuplicatePrefacturation
		}
		return entities.Prefacturation{}, err
	}
	return p, nil
}

func (r *PrefacturationGormRepository) GetByID(ctx context.Context, id string) (entities.Prefacturation, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PrefacturationGormRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Prefacturation, error) {
	return r.first(ctx, "order_id = ?", orderID)
}

func (r *PrefacturationGormRepository) first(ctx context.Context, query string, arg string) (entities.Prefacturation, error) {
	var rec prefacturationRecord
	err := r.db.WithContext(ctx).Where(query, arg).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Prefacturation{}, nil
	}
	if err != nil {
		return entities.Prefacturation{}, err
	}
	return fromPrefacturationRecord(rec)
}

// Update is a compare-and-set on the version column.
func (r *PrefacturationGormRepository) Update(ctx context.Context, p entities.Prefacturation, expectedVersion int64) (entities.Prefacturation, error) {
	p.Version = expectedVersion + 1
	rec, err := toPrefacturationRecord(p)
	if err != nil {
		return entities.Prefacturation{}, err
	}

	res := r.db.WithContext(ctx).
		Model(&prefacturationRecord{}).
		Where("id = ? AND version = ?", p.ID, expectedVersion).
		Updates(map[string]any{
			"carrier_id":                rec.CarrierID,
			"client_id":                 rec.ClientID,
			"status":                    rec.Status,
			"workflow_status":           rec.WorkflowStatus,
			"carrier_validation_status": rec.CarrierStatus,
			"carrier_timeout_at":        rec.TimeoutAt,
			"version":                   rec.Version,
			"document":                  rec.Document,
			"updated_at":                rec.UpdatedAt,
		})
	if res.Error != nil {
		return entities.Prefacturation{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Prefacturation{}, reconciliation.ErrConcurrentModification
	}
	return p, nil
}

func (r *PrefacturationGormRepository) List(ctx context.Context, filter interfaces.PrefacturationFilter) ([]entities.Prefacturation, error) {
	q := r.db.WithContext(ctx).Model(&prefacturationRecord{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.CarrierID != "" {
		q = q.Where("carrier_id = ?", filter.CarrierID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if len(filter.WorkflowStatuses) > 0 {
		statuses := make([]string, 0, len(filter.WorkflowStatuses))
		for _, st := range filter.WorkflowStatuses {
			statuses = append(statuses, string(st))
		}
		q = q.Where("workflow_status IN ?", statuses)
	}
	if filter.CarrierValidation != "" {
		q = q.Where("carrier_validation_status = ?", string(filter.CarrierValidation))
	}
	if !filter.TimeoutDue.IsZero() {
		q = q.Where("carrier_timeout_at IS NOT NULL AND carrier_timeout_at <= ?", filter.TimeoutDue.UTC())
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []prefacturationRecord
	if err := q.Order("created_at desc").Order("id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Prefacturation, 0, len(recs))
	for _, rec := range recs {
		p, err := fromPrefacturationRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toPrefacturationRecord(p entities.Prefacturation) (prefacturationRecord, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return prefacturationRecord{}, err
	}
	return prefacturationRecord{
		ID:             p.ID,
		OrderID:        p.OrderID,
		CarrierID:      p.CarrierID,
		ClientID:       p.ClientID,
		Status:         string(p.Status),
		WorkflowStatus: string(p.WorkflowStatus),
		CarrierStatus:  string(p.CarrierValidation.Status),
		TimeoutAt:      nullableTime(p.CarrierValidation.TimeoutAt),
		Version:        p.Version,
		Document:       string(doc),
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}, nil
}

func fromPrefacturationRecord(rec prefacturationRecord) (entities.Prefacturation, error) {
	var p entities.Prefacturation
	if err := json.Unmarshal([]byte(rec.Document), &p); err != nil {
		return entities.Prefacturation{}, err
	}
	p.Version = rec.Version
	return p, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
