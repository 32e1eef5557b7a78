package item

import "errors"

// CreateItemDTO carries caller-supplied fields for item creation.
// Availability is a pointer so "false" and "not supplied" stay distinct;
// absent defaults to true.
type CreateItemDTO struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Availability *bool   `json:"availability"`
	Status       *string `json:"status"`
}

func (dto CreateItemDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Category == "" {
		return errors.New("category is required")
	}
	return nil
}

// UpdateItemDTO uses pointer fields throughout so every field carries an
// explicit "was it supplied" bit; an empty string supplied for name is an
// update to empty, not a fallback to the stored value.
type UpdateItemDTO struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Availability *bool   `json:"availability"`
}

func (dto UpdateItemDTO) Validate() error {
	if dto.Name == nil && dto.Category == nil && dto.Description == nil && dto.Availability == nil {
		return errors.New("no fields supplied")
	}
	return nil
}

type AssignItemDTO struct {
	ItemID int64 `json:"itemId"`
	UserID int64 `json:"userId"`
}

func (dto AssignItemDTO) Validate() error {
	if dto.ItemID == 0 {
		return errors.New("itemId is required")
	}
	if dto.UserID == 0 {
		return errors.New("userId is required")
	}
	return nil
}

type ReassignItemDTO struct {
	ItemID    int64 `json:"itemId"`
	NewUserID int64 `json:"newUserId"`
}

func (dto ReassignItemDTO) Validate() error {
	if dto.ItemID == 0 {
		return errors.New("itemId is required")
	}
	if dto.NewUserID == 0 {
		return errors.New("newUserId is required")
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

type ReportIssueDTO struct {
	Issue string `json:"issue"`
}

func (dto ReportIssueDTO) Validate() error {
	if dto.Issue == "" {
		return errors.New("issue is required")
	}
	return nil
}

type RequestItemDTO struct {
	ItemID int64 `json:"itemId"`
}

func (dto RequestItemDTO) Validate() error {
	if dto.ItemID == 0 {
		return errors.New("itemId is required")
	}
	return nil
}

// ItemFilter holds the optional exact-match filters; nil means the field is
// not filtered on at all, never "match null".
type ItemFilter struct {
	Availability *bool
	AssignedTo   *int64
}
