package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventItemAssigned   = "item.assigned"
	EventItemReassigned = "item.reassigned"
	EventIssueReported  = "item.issue_reported"
)

func NewItemAssignedEvent(itemID, userID int64) BaseEvent {
	return newItemEvent(EventItemAssigned, map[string]interface{}{
		"item_id": itemID,
		"user_id": userID,
	})
}

func NewItemReassignedEvent(itemID, newUserID int64) BaseEvent {
	return newItemEvent(EventItemReassigned, map[string]interface{}{
		"item_id":     itemID,
		"new_user_id": newUserID,
	})
}

func NewIssueReportedEvent(itemID, reportedBy int64, issue string) BaseEvent {
	return newItemEvent(EventIssueReported, map[string]interface{}{
		"item_id":     itemID,
		"reported_by": reportedBy,
		"issue":       issue,
	})
}

func newItemEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        fmt.Sprintf("%s-%s", eventType, uuid.NewString()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
