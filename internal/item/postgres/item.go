package postgres

import (
	"strings"
	"time"

	"github.com/Ananeya/asset-management-system/internal"
	"github.com/Ananeya/asset-management-system/internal/item"
	itemDatamodel "github.com/Ananeya/asset-management-system/internal/core/datamodel/item"
	"gorm.io/gorm"
)

// ItemRepository implements item.Repository using GORM. Items are written
// whole except for the guarded lifecycle updates, which pair a conditional
// UPDATE with the history insert inside one transaction.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) item.Repository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(it *item.Item) error {
	dm := item.ToDataModel(it)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	it.ID = dm.ID
	return nil
}

func (r *ItemRepository) GetByID(id int64) (*item.Item, error) {
	var dm itemDatamodel.Item
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_history.id ASC")
		}).
		Preload("IssueReports", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_issue_reports.id ASC")
		}).
		Where("id = ?", id).
		First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrItemNotFound
		}
		return nil, err
	}
	return item.FromDataModel(&dm), nil
}

func (r *ItemRepository) GetAll() ([]*item.Item, error) {
	var dms []*itemDatamodel.Item
	err := r.db.
		Preload("History").
		Preload("IssueReports").
		Order("id ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(dms), nil
}

func (r *ItemRepository) ApplyUpdate(id int64, dto item.UpdateItemDTO) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Availability != nil {
		updates["availability"] = *dto.Availability
	}

	return r.db.Model(&itemDatamodel.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ItemRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&itemDatamodel.HistoryEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&itemDatamodel.IssueReport{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&itemDatamodel.Item{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrItemNotFound
		}
		return nil
	})
}

func (r *ItemRepository) Search(query string) ([]*item.Item, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var dms []*itemDatamodel.Item
	err := r.db.
		Preload("History").
		Preload("IssueReports").
		Where("lower(name) LIKE ? OR lower(category) LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(dms), nil
}

func (r *ItemRepository) Filter(filter item.ItemFilter) ([]*item.Item, error) {
	q := r.db.
		Preload("History").
		Preload("IssueReports").
		Order("id ASC")
	if filter.Availability != nil {
		q = q.Where("availability = ?", *filter.Availability)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}

	var dms []*itemDatamodel.Item
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(dms), nil
}

func (r *ItemRepository) GetByAssignee(userID int64) ([]*item.Item, error) {
	var dms []*itemDatamodel.Item
	err := r.db.
		Preload("History").
		Preload("IssueReports").
		Where("assigned_to = ?", userID).
		Order("id ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(dms), nil
}

// AssignIfAvailable flips availability and sets the assignee only when the
// item is still available; losing a race surfaces as a Conflict, never a
// double assignment.
func (r *ItemRepository) AssignIfAvailable(itemID, userID int64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&itemDatamodel.Item{}).
			Where("id = ? AND availability = ?", itemID, true).
			Updates(map[string]interface{}{
				"assigned_to":  userID,
				"availability": false,
				"updated_at":   at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrItemAlreadyAssigned
		}

		return tx.Create(&itemDatamodel.HistoryEntry{
			ItemID:     itemID,
			UserID:     userID,
			Status:     item.HistoryStatusAssigned,
			AssignedAt: at,
		}).Error
	})
}

// ReassignIfAssigned swaps the holder; availability is deliberately not
// touched and not part of the guard.
func (r *ItemRepository) ReassignIfAssigned(itemID, newUserID int64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&itemDatamodel.Item{}).
			Where("id = ? AND assigned_to IS NOT NULL", itemID).
			Updates(map[string]interface{}{
				"assigned_to": newUserID,
				"updated_at":  at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrItemNotAssigned
		}

		return tx.Create(&itemDatamodel.HistoryEntry{
			ItemID:     itemID,
			UserID:     newUserID,
			Status:     item.HistoryStatusReassigned,
			AssignedAt: at,
		}).Error
	})
}

func (r *ItemRepository) UpdateStatusField(itemID int64, status string) error {
	return r.db.Model(&itemDatamodel.Item{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *ItemRepository) AppendIssueReport(itemID int64, reportedBy *int64, issue string) error {
	return r.db.Create(&itemDatamodel.IssueReport{
		ItemID:     itemID,
		ReportedBy: reportedBy,
		Issue:      issue,
		Status:     item.IssueStatusPending,
		CreatedAt:  time.Now(),
	}).Error
}
