package item

import (
	"time"

	itemDatamodel "github.com/Ananeya/asset-management-system/internal/core/datamodel/item"
)

// Item is a trackable inventory unit. availability and assignedTo move
// together through assign; reassign swaps the holder without touching
// availability, matching the recorded lifecycle contract.
type Item struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Description  string         `json:"description,omitempty"`
	Availability bool           `json:"availability"`
	AssignedTo   *int64         `json:"assignedTo,omitempty"`
	Status       string         `json:"status"`
	History      []HistoryEntry `json:"history"`
	IssueReports []IssueReport  `json:"issueReports"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HistoryEntry is an immutable audit record of an assignment event. Status
// updates deliberately do not write here; assignment history and the free
// text status field are separate trails.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assignedAt"`
}

type IssueReport struct {
	ID         int64     `json:"id"`
	ReportedBy *int64    `json:"reportedBy,omitempty"`
	Issue      string    `json:"issue"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	HistoryStatusAssigned   = "assigned"
	HistoryStatusReassigned = "reassigned"

	IssueStatusPending = "pending"

	DefaultStatus = "available"
)

func (i *Item) IsAssigned() bool {
	return i.AssignedTo != nil
}

func (i *Item) IsHeldBy(userID int64) bool {
	return i.AssignedTo != nil && *i.AssignedTo == userID
}

func ToDataModel(i *Item) *itemDatamodel.Item {
	dm := &itemDatamodel.Item{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Description:  i.Description,
		Availability: i.Availability,
		AssignedTo:   i.AssignedTo,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
	for _, h := range i.History {
		dm.History = append(dm.History, itemDatamodel.HistoryEntry{
			ID:         h.ID,
			ItemID:     i.ID,
			UserID:     h.UserID,
			Status:     h.Status,
			AssignedAt: h.AssignedAt,
		})
	}
	for _, rep := range i.IssueReports {
		dm.IssueReports = append(dm.IssueReports, itemDatamodel.IssueReport{
			ID:         rep.ID,
			ItemID:     i.ID,
			ReportedBy: rep.ReportedBy,
			Issue:      rep.Issue,
			Status:     rep.Status,
			CreatedAt:  rep.CreatedAt,
		})
	}
	return dm
}

func FromDataModel(dm *itemDatamodel.Item) *Item {
	i := &Item{
		ID:           dm.ID,
		Name:         dm.Name,
		Category:     dm.Category,
		Description:  dm.Description,
		Availability: dm.Availability,
		AssignedTo:   dm.AssignedTo,
		Status:       dm.Status,
		History:      make([]HistoryEntry, 0, len(dm.History)),
		IssueReports: make([]IssueReport, 0, len(dm.IssueReports)),
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
	for _, h := range dm.History {
		i.History = append(i.History, HistoryEntry{
			ID:         h.ID,
			UserID:     h.UserID,
			Status:     h.Status,
			AssignedAt: h.AssignedAt,
		})
	}
	for _, rep := range dm.IssueReports {
		i.IssueReports = append(i.IssueReports, IssueReport{
			ID:         rep.ID,
			ReportedBy: rep.ReportedBy,
			Issue:      rep.Issue,
			Status:     rep.Status,
			CreatedAt:  rep.CreatedAt,
		})
	}
	return i
}

func FromDataModelSlice(items []*itemDatamodel.Item) []*Item {
	result := make([]*Item, len(items))
	for i, dm := range items {
		result[i] = FromDataModel(dm)
	}
	return result
}
