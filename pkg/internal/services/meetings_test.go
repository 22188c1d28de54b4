package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestNewMeetingRecordsOrganizer(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")

	meeting := testMeeting(t, meetings, creator, false)

	require.Len(t, meeting.Participants, 1)
	assert.Equal(t, models.ParticipantRoleOrganizer, meeting.Participants[0].Role)
	assert.Equal(t, models.ParticipantStatusAccepted, meeting.Participants[0].Status)
	assert.Equal(t, creator.Email, meeting.Participants[0].Email)
	assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)
}

func TestEndMeeting(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")
	stranger := testAccount(t, db, "stranger@example.com")

	t.Run("non-recurring transitions to ended", func(t *testing.T) {
		meeting := testMeeting(t, meetings, creator, false)

		ended, err := meetings.EndMeeting(creator, meeting.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusEnded, ended.Status)
		require.NotNil(t, ended.EndedAt)

		_, err = meetings.EndMeeting(creator, meeting.ID)
		assert.ErrorIs(t, err, ErrMeetingAlreadyEnded)
	})

	t.Run("recurring stays scheduled", func(t *testing.T) {
		meeting := testMeeting(t, meetings, creator, true)

		ended, err := meetings.EndMeeting(creator, meeting.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusScheduled, ended.Status)
		assert.Nil(t, ended.EndedAt)

		// Recurring meetings can be ended again on the next occurrence.
		_, err = meetings.EndMeeting(creator, meeting.ID)
		assert.NoError(t, err)
	})

	t.Run("only the creator may end", func(t *testing.T) {
		meeting := testMeeting(t, meetings, creator, false)

		_, err := meetings.EndMeeting(stranger, meeting.ID)
		assert.ErrorIs(t, err, ErrNotMeetingCreator)

		var unchanged models.Meeting
		require.NoError(t, db.First(&unchanged, "id = ?", meeting.ID).Error)
		assert.Equal(t, models.MeetingStatusScheduled, unchanged.Status)
	})

	t.Run("unconfigured mailer keeps the transition", func(t *testing.T) {
		meeting := testMeeting(t, meetings, creator, false)

		ended, err := meetings.EndMeeting(creator, meeting.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusEnded, ended.Status)
	})
}

func TestCloseMeeting(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")
	stranger := testAccount(t, db, "stranger@example.com")

	meeting := testMeeting(t, meetings, creator, false)

	_, err := meetings.CloseMeeting(stranger, meeting.ID)
	assert.ErrorIs(t, err, ErrNotMeetingCreator)

	closed, err := meetings.CloseMeeting(creator, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStatusClosed, closed.Status)
}

func TestListMeetingWithUser(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	participants := NewParticipantService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")
	invitee := testAccount(t, db, "invitee@example.com")
	stranger := testAccount(t, db, "stranger@example.com")

	meeting := testMeeting(t, meetings, creator, false)
	_, err := participants.InviteParticipant(creator, meeting.ID, invitee.Email)
	require.NoError(t, err)

	owned, err := meetings.ListMeetingWithUser(creator, false)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	invited, err := meetings.ListMeetingWithUser(invitee, false)
	require.NoError(t, err)
	assert.Len(t, invited, 1)

	unrelated, err := meetings.ListMeetingWithUser(stranger, false)
	require.NoError(t, err)
	assert.Empty(t, unrelated)
}

func TestEnsureMember(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	participants := NewParticipantService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")
	invitee := testAccount(t, db, "invitee@example.com")
	stranger := testAccount(t, db, "stranger@example.com")

	meeting := testMeeting(t, meetings, creator, false)
	_, err := participants.InviteParticipant(creator, meeting.ID, invitee.Email)
	require.NoError(t, err)

	assert.NoError(t, meetings.EnsureMember(creator, meeting.ID))
	assert.NoError(t, meetings.EnsureMember(invitee, meeting.ID))
	assert.ErrorIs(t, meetings.EnsureMember(stranger, meeting.ID), ErrNotMeetingMember)
	assert.ErrorIs(t, meetings.EnsureMember(creator, 9999), gorm.ErrRecordNotFound)
}

func TestUpcomingListsScheduledOnly(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")

	nextWeek := datatypes.Date(time.Now().AddDate(0, 0, 7))
	create := func(title string) models.Meeting {
		meeting, err := meetings.NewMeeting(creator, models.Meeting{
			Title:         title,
			ScheduledDate: nextWeek,
			ScheduledTime: "10:00",
		})
		require.NoError(t, err)
		return meeting
	}

	kept := create("Still On")
	ended := create("Wrapped Up")
	closed := create("Archived")

	_, err := meetings.EndMeeting(creator, ended.ID)
	require.NoError(t, err)
	_, err = meetings.CloseMeeting(creator, closed.ID)
	require.NoError(t, err)

	upcoming, err := meetings.ListMeetingWithUser(creator, true)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, kept.ID, upcoming[0].ID)

	all, err := meetings.ListMeetingWithUser(creator, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEditMeetingCreatorOnly(t *testing.T) {
	db := testDB(t)
	meetings := NewMeetingService(db, &Postman{})
	creator := testAccount(t, db, "owner@example.com")
	stranger := testAccount(t, db, "stranger@example.com")

	meeting := testMeeting(t, meetings, creator, false)
	meeting.Title = "Renamed Sync"

	_, err := meetings.EditMeeting(stranger, meeting)
	assert.ErrorIs(t, err, ErrNotMeetingCreator)

	updated, err := meetings.EditMeeting(creator, meeting)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Sync", updated.Title)

	assert.ErrorIs(t, meetings.DeleteMeeting(stranger, meeting), ErrNotMeetingCreator)
	assert.NoError(t, meetings.DeleteMeeting(creator, meeting))
}
