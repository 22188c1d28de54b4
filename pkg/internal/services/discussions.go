package services

import (
	"errors"

	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrNotDiscussionOwner = errors.New("only the creator can modify this discussion item")

type DiscussionService struct {
	db *gorm.DB
}

func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{db: db}
}

// NewDiscussionItem appends an agenda topic to the end of the meeting's
// list: the order index is the current list length.
func (v *DiscussionService) NewDiscussionItem(user models.Account, item models.DiscussionItem) (models.DiscussionItem, error) {
	var count int64
	if err := v.db.Model(&models.DiscussionItem{}).
		Where("meeting_id = ?", item.MeetingID).
		Count(&count).Error; err != nil {
		return item, err
	}

	item.CreatedByID = user.ID
	item.Status = models.DiscussionStatusPending
	item.OrderIndex = int(count)

	err := v.db.Save(&item).Error

	return item, err
}

func (v *DiscussionService) GetDiscussionItem(id uint) (models.DiscussionItem, error) {
	var item models.DiscussionItem
	if err := v.db.First(&item, "id = ?", id).Error; err != nil {
		return item, err
	}

	return item, nil
}

// ListDiscussionItem returns the open agenda in display order.
func (v *DiscussionService) ListDiscussionItem(meetingId uint) ([]models.DiscussionItem, error) {
	var items []models.DiscussionItem
	if err := v.db.
		Where("meeting_id = ? AND status = ?", meetingId, models.DiscussionStatusPending).
		Order("order_index ASC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func (v *DiscussionService) EditDiscussionItem(user models.Account, item models.DiscussionItem) (models.DiscussionItem, error) {
	if item.CreatedByID != user.ID {
		return item, ErrNotDiscussionOwner
	}

	err := v.db.Save(&item).Error

	return item, err
}

// MarkDiscussionItemDone checks a topic off; any participant viewing the
// meeting may do this during the session.
func (v *DiscussionService) MarkDiscussionItemDone(itemId uint) (models.DiscussionItem, error) {
	var item models.DiscussionItem
	if err := v.db.First(&item, "id = ?", itemId).Error; err != nil {
		return item, err
	}

	item.Status = models.DiscussionStatusDone
	err := v.db.Save(&item).Error

	return item, err
}

func (v *DiscussionService) DeleteDiscussionItem(user models.Account, itemId uint) error {
	var item models.DiscussionItem
	if err := v.db.First(&item, "id = ?", itemId).Error; err != nil {
		return err
	}
	if item.CreatedByID != user.ID {
		return ErrNotDiscussionOwner
	}

	return v.db.Delete(&item).Error
}

// ReorderDiscussionItems persists a drag of one agenda topic to a new
// position within the client's current sequence.
func (v *DiscussionService) ReorderDiscussionItems(meetingId uint, seq []uint, dragged uint, dest int) error {
	moved := moveID(seq, dragged, dest)
	stored, err := storedOrder(v.db, &models.DiscussionItem{}, meetingId)
	if err != nil {
		return err
	}

	return applyOrder(v.db, &models.DiscussionItem{}, meetingId, resequence(moved, stored))
}
