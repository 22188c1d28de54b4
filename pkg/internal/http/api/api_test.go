package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app         *fiber.App
	db          *gorm.DB
	auth        *services.AuthService
	meetings    *services.MeetingService
	todos       *services.TodoService
	discussions *services.DiscussionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	viper.Set("security.jwt_secret", "unit-test-secret")
	viper.Set("security.token_valid_hours", 1)
	viper.Set("features.todo_ordering", true)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.MagicToken{},
		&models.Meeting{},
		&models.MeetingParticipant{},
		&models.Todo{},
		&models.DiscussionItem{},
	))

	postman := &services.Postman{}
	accounts := services.NewAccountService(db)
	auth := services.NewAuthService(db, postman, accounts)
	meetings := services.NewMeetingService(db, postman)
	participants := services.NewParticipantService(db, postman)
	todos := services.NewTodoService(db)
	discussions := services.NewDiscussionService(db)

	app := fiber.New()
	NewAPI(auth, accounts, meetings, participants, todos, discussions).MapAPIs(app, "/api")

	return &testEnv{
		app:         app,
		db:          db,
		auth:        auth,
		meetings:    meetings,
		todos:       todos,
		discussions: discussions,
	}
}

func (v *testEnv) signUp(t *testing.T, email string) (models.Account, string) {
	t.Helper()

	account, err := v.auth.SignUp(email, "correct horse battery")
	require.NoError(t, err)
	token, _, err := v.auth.SignIn(email, "correct horse battery")
	require.NoError(t, err)

	return account, token
}

func (v *testEnv) request(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := v.app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestSetTodoStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.signUp(t, "user@example.com")

	todo, err := env.todos.NewTodo(user, models.Todo{Title: "Task"})
	require.NoError(t, err)

	resp := env.request(t, fiber.MethodPut,
		fmt.Sprintf("/api/todos/%d/status", todo.ID), token,
		`{"status":"in_progress"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var stored models.Todo
	require.NoError(t, env.db.First(&stored, "id = ?", todo.ID).Error)
	assert.Equal(t, models.TodoStatusPending, stored.Status)

	resp = env.request(t, fiber.MethodPut,
		fmt.Sprintf("/api/todos/%d/status", todo.ID), token,
		`{"status":"done"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, env.db.First(&stored, "id = ?", todo.ID).Error)
	assert.Equal(t, models.TodoStatusDone, stored.Status)
}

func TestMeetingListMutationsRequireMembership(t *testing.T) {
	env := newTestEnv(t)
	creator, creatorToken := env.signUp(t, "owner@example.com")
	_, strangerToken := env.signUp(t, "stranger@example.com")

	meeting, err := env.meetings.NewMeeting(creator, models.Meeting{
		Title:         "Weekly Sync",
		ScheduledDate: datatypes.Date{},
		ScheduledTime: "10:00",
	})
	require.NoError(t, err)

	first, err := env.todos.NewTodo(creator, models.Todo{MeetingID: &meeting.ID, Title: "First"})
	require.NoError(t, err)
	second, err := env.todos.NewTodo(creator, models.Todo{MeetingID: &meeting.ID, Title: "Second"})
	require.NoError(t, err)

	item, err := env.discussions.NewDiscussionItem(creator, models.DiscussionItem{
		MeetingID: meeting.ID, Title: "Topic",
	})
	require.NoError(t, err)

	reorderBody := fmt.Sprintf(`{"sequence":[%d,%d],"dragged":%d,"position":0}`,
		first.ID, second.ID, second.ID)

	resp := env.request(t, fiber.MethodPost,
		fmt.Sprintf("/api/meetings/%d/todos/reorder", meeting.ID), strangerToken, reorderBody)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost,
		fmt.Sprintf("/api/meetings/%d/discussions/reorder", meeting.ID), strangerToken,
		fmt.Sprintf(`{"sequence":[%d],"dragged":%d,"position":0}`, item.ID, item.ID))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, fiber.MethodPut,
		fmt.Sprintf("/api/meetings/%d/discussions/%d/done", meeting.ID, item.ID), strangerToken, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var untouched models.DiscussionItem
	require.NoError(t, env.db.First(&untouched, "id = ?", item.ID).Error)
	assert.Equal(t, models.DiscussionStatusPending, untouched.Status)

	resp = env.request(t, fiber.MethodPost,
		fmt.Sprintf("/api/meetings/%d/todos/reorder", meeting.ID), creatorToken, reorderBody)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodPut,
		fmt.Sprintf("/api/meetings/%d/discussions/%d/done", meeting.ID, item.ID), creatorToken, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
