package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
	"github.com/twaiba/faithful-registry/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// listFilterColumns is the allowlist of query filters for imam listing.
var listFilterColumns = map[string]string{
	"mosque_assigned": "mosque_assigned",
	"status":          "status",
	"role_in_mosque":  "role_in_mosque",
}

type ImamRepository struct {
	db *gorm.DB
}

func NewImamRepository(db *gorm.DB) *ImamRepository {
	return &ImamRepository{db: db}
}

func (r *ImamRepository) Create(ctx context.Context, i registry.Imam) (registry.Imam, error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	row := imamToModel(i)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Imam{}, registry.Duplicatef("an imam with the same faithful already exists")
		}
		return registry.Imam{}, fmt.Errorf("create imam: %w", err)
	}

	return imamFromModel(row), nil
}

func (r *ImamRepository) Get(ctx context.Context, id string) (registry.Imam, error) {
	return r.getOne(ctx, "id = ?", id, fmt.Sprintf("imam %s not found", id))
}

func (r *ImamRepository) GetByFaithful(ctx context.Context, faithfulID string) (registry.Imam, error) {
	return r.getOne(ctx, "faithful = ?", faithfulID, fmt.Sprintf("no imam record for faithful %s", faithfulID))
}

func (r *ImamRepository) getOne(ctx context.Context, cond, arg, notFoundMsg string) (registry.Imam, error) {
	var row models.Imam

	err := r.db.WithContext(ctx).
		Preload("Certifications", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Preload("AssignmentLogs", func(db *gorm.DB) *gorm.DB { return db.Order("moved_at") }).
		First(&row, cond, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Imam{}, registry.NotFoundf("%s", notFoundMsg)
		}
		return registry.Imam{}, fmt.Errorf("get imam: %w", err)
	}

	return imamFromModel(row), nil
}

func (r *ImamRepository) List(ctx context.Context, filters map[string]string) ([]registry.Imam, error) {
	q := r.db.WithContext(ctx).
		Preload("Certifications", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Preload("AssignmentLogs", func(db *gorm.DB) *gorm.DB { return db.Order("moved_at") }).
		Order("created_at DESC")

	for key, value := range filters {
		column, ok := listFilterColumns[key]
		if !ok || value == "" {
			continue
		}
		q = q.Where(column+" = ?", value)
	}

	var rows []models.Imam
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list imams: %w", err)
	}

	imams := make([]registry.Imam, 0, len(rows))
	for _, row := range rows {
		imams = append(imams, imamFromModel(row))
	}
	return imams, nil
}

// Update saves the imam row and replaces its certification rows wholesale.
// Assignment logs are append-only and left untouched here.
func (r *ImamRepository) Update(ctx context.Context, i registry.Imam) (registry.Imam, error) {
	row := imamToModel(i)
	certs := row.Certifications
	row.Certifications = nil
	row.AssignmentLogs = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("update imam: %w", err)
		}
		if err := tx.Delete(&models.ImamCertification{}, "imam_id = ?", row.ID).Error; err != nil {
			return fmt.Errorf("clear certifications: %w", err)
		}
		if len(certs) > 0 {
			for idx := range certs {
				certs[idx].ID = 0
				certs[idx].ImamID = row.ID
			}
			if err := tx.Create(&certs).Error; err != nil {
				return fmt.Errorf("insert certifications: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return registry.Imam{}, registry.Duplicatef("an imam with the same faithful already exists")
		}
		return registry.Imam{}, err
	}

	return r.Get(ctx, row.ID)
}

func (r *ImamRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ImamCertification{}, "imam_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete certifications: %w", err)
		}
		if err := tx.Delete(&models.ImamAssignmentLog{}, "imam_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete assignment logs: %w", err)
		}
		res := tx.Delete(&models.Imam{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete imam: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return registry.NotFoundf("imam %s not found", id)
		}
		return nil
	})
}

func (r *ImamRepository) AppendAssignmentLog(ctx context.Context, imamID string, log registry.AssignmentLog) error {
	row := models.ImamAssignmentLog{
		ImamID:    imamID,
		OldMosque: log.OldMosque,
		NewMosque: log.NewMosque,
		Reason:    log.Reason,
		MovedBy:   log.MovedBy,
		MovedAt:   log.MovedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append assignment log: %w", err)
	}
	return nil
}

func imamToModel(i registry.Imam) models.Imam {
	row := models.Imam{
		ID:                i.ID,
		Faithful:          i.Faithful,
		MosqueAssigned:    i.MosqueAssigned,
		DateAppointed:     i.DateAppointed,
		YearsOfExperience: i.YearsOfExperience,
		RoleInMosque:      i.RoleInMosque,
		Status:            i.Status,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
	for _, c := range i.Certifications {
		row.Certifications = append(row.Certifications, models.ImamCertification{
			ImamID:            i.ID,
			Idx:               c.Idx,
			CertificationName: c.CertificationName,
			IssuingBody:       c.IssuingBody,
			DateAwarded:       c.DateAwarded,
			Attachment:        c.Attachment,
		})
	}
	for _, l := range i.AssignmentLogs {
		row.AssignmentLogs = append(row.AssignmentLogs, models.ImamAssignmentLog{
			ImamID:    i.ID,
			OldMosque: l.OldMosque,
			NewMosque: l.NewMosque,
			Reason:    l.Reason,
			MovedBy:   l.MovedBy,
			MovedAt:   l.MovedAt,
		})
	}
	return row
}

func imamFromModel(row models.Imam) registry.Imam {
	i := registry.Imam{
		ID:                row.ID,
		Faithful:          row.Faithful,
		MosqueAssigned:    row.MosqueAssigned,
		DateAppointed:     row.DateAppointed,
		YearsOfExperience: row.YearsOfExperience,
		RoleInMosque:      row.RoleInMosque,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	for _, c := range row.Certifications {
		i.Certifications = append(i.Certifications, registry.Certification{
			Idx:               c.Idx,
			CertificationName: c.CertificationName,
			IssuingBody:       c.IssuingBody,
			DateAwarded:       c.DateAwarded,
			Attachment:        c.Attachment,
		})
	}
	for _, l := range row.AssignmentLogs {
		i.AssignmentLogs = append(i.AssignmentLogs, registry.AssignmentLog{
			OldMosque: l.OldMosque,
			NewMosque: l.NewMosque,
			Reason:    l.Reason,
			MovedBy:   l.MovedBy,
			MovedAt:   l.MovedAt,
		})
	}
	return i
}
