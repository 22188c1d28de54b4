package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestMeetingIsUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)
	onDate := func(day int) datatypes.Date {
		return datatypes.Date(time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC))
	}

	assert.True(t, Meeting{ScheduledDate: onDate(11), Status: MeetingStatusScheduled}.IsUpcoming(now))
	assert.True(t, Meeting{ScheduledDate: onDate(10), Status: MeetingStatusScheduled}.IsUpcoming(now),
		"today still counts as upcoming")
	assert.False(t, Meeting{ScheduledDate: onDate(9), Status: MeetingStatusScheduled}.IsUpcoming(now))
	assert.False(t, Meeting{ScheduledDate: onDate(11), Status: MeetingStatusClosed}.IsUpcoming(now),
		"closed meetings never show as upcoming")
	assert.False(t, Meeting{ScheduledDate: onDate(11), Status: MeetingStatusEnded}.IsUpcoming(now),
		"ended meetings never show as upcoming, even future-dated ones")
}
