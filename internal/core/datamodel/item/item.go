package item

import "time"

type Item struct {
	ID           int64          `gorm:"primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Category     string         `gorm:"column:category;not null"`
	Description  string         `gorm:"column:description"`
	Availability bool           `gorm:"column:availability;default:true"`
	AssignedTo   *int64         `gorm:"column:assigned_to"`
	Status       string         `gorm:"column:status;default:available"`
	History      []HistoryEntry `gorm:"foreignKey:ItemID"`
	IssueReports []IssueReport  `gorm:"foreignKey:ItemID"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "items"
}

// HistoryEntry rows are insert-only; nothing in the repository updates or
// deletes them once written.
type HistoryEntry struct {
	ID         int64     `gorm:"primaryKey"`
	ItemID     int64     `gorm:"column:item_id;not null;index"`
	UserID     int64     `gorm:"column:user_id;not null"`
	Status     string    `gorm:"column:status;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at"`
}

func (HistoryEntry) TableName() string {
	return "item_history"
}

type IssueReport struct {
	ID         int64     `gorm:"primaryKey"`
	ItemID     int64     `gorm:"column:item_id;not null;index"`
	ReportedBy *int64    `gorm:"column:reported_by"`
	Issue      string    `gorm:"column:issue;not null"`
	Status     string    `gorm:"column:status;default:pending"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (IssueReport) TableName() string {
	return "item_issue_reports"
}
