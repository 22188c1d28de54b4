package services

import (
	"errors"

	"gorm.io/gorm"
)

var ErrOrderingDisabled = errors.New("list ordering is not enabled on this deployment")

// moveID returns seq with the dragged identifier moved to the destination
// index: the element is removed and reinserted, nothing else changes order.
// The destination is clamped to the sequence bounds. An identifier that is
// not part of seq leaves it untouched.
func moveID(seq []uint, dragged uint, dest int) []uint {
	src := -1
	for idx, id := range seq {
		if id == dragged {
			src = idx
			break
		}
	}
	if src < 0 {
		return seq
	}

	out := make([]uint, 0, len(seq))
	out = append(out, seq[:src]...)
	out = append(out, seq[src+1:]...)

	if dest < 0 {
		dest = 0
	}
	if dest > len(out) {
		dest = len(out)
	}

	out = append(out[:dest], append([]uint{dragged}, out[dest:]...)...)
	return out
}

type orderUpdate struct {
	ID         uint
	OrderIndex int
}

type orderRow struct {
	ID         uint
	OrderIndex *int
}

// storedOrder fetches the persisted order_index per row of the meeting's
// list. Deletions leave gaps in the stored values, so positions in a fetched
// sequence cannot stand in for them.
func storedOrder(db *gorm.DB, model any, meetingId uint) (map[uint]*int, error) {
	var rows []orderRow
	if err := db.Model(model).
		Where("meeting_id = ?", meetingId).
		Select("id", "order_index").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]*int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.OrderIndex
	}
	return out, nil
}

// resequence assigns order_index = position (0-based) across after, emitting
// one update per entity whose stored index differs from its new position.
// A move onto itself on an already compacted list yields no updates; a list
// with gaps from deletions gets compacted as a side effect.
func resequence(after []uint, stored map[uint]*int) []orderUpdate {
	var updates []orderUpdate
	for idx, id := range after {
		if old, ok := stored[id]; ok && old != nil && *old == idx {
			continue
		}
		updates = append(updates, orderUpdate{ID: id, OrderIndex: idx})
	}
	return updates
}

// applyOrder persists the updates one row at a time. The batch is
// deliberately not transactional: a failure partway leaves the earlier
// writes committed, and the caller recovers by re-fetching whatever state
// landed. Concurrent reorders are last-write-wins per row.
func applyOrder(db *gorm.DB, model any, meetingId uint, updates []orderUpdate) error {
	for _, update := range updates {
		if err := db.Model(model).
			Where("id = ? AND meeting_id = ?", update.ID, meetingId).
			Update("order_index", update.OrderIndex).Error; err != nil {
			return err
		}
	}
	return nil
}
