package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/timetomeet/meetinghub/pkg/internal/services"
)

// API bundles the service dependencies of every handler; nothing reaches
// for shared package state.
type API struct {
	auth         *services.AuthService
	accounts     *services.AccountService
	meetings     *services.MeetingService
	participants *services.ParticipantService
	todos        *services.TodoService
	discussions  *services.DiscussionService
}

func NewAPI(
	auth *services.AuthService,
	accounts *services.AccountService,
	meetings *services.MeetingService,
	participants *services.ParticipantService,
	todos *services.TodoService,
	discussions *services.DiscussionService,
) *API {
	return &API{
		auth:         auth,
		accounts:     accounts,
		meetings:     meetings,
		participants: participants,
		todos:        todos,
		discussions:  discussions,
	}
}

func (v *API) MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/signup", v.signUp)
			auth.Post("/signin", v.signIn)
			auth.Post("/signout", v.signOut)
			auth.Post("/password/forgot", v.requestPasswordReset)
			auth.Post("/password/reset", v.resetPassword)
		}

		api.Get("/users/me", v.authMiddleware, v.getUserinfo)
		api.Put("/users/me", v.authMiddleware, v.editUserinfo)

		meetings := api.Group("/meetings").Use(v.authMiddleware).Name("Meetings API")
		{
			meetings.Get("/", v.listMeeting)
			meetings.Post("/", v.createMeeting)
			meetings.Get("/:meetingId", v.getMeeting)
			meetings.Put("/:meetingId", v.editMeeting)
			meetings.Delete("/:meetingId", v.deleteMeeting)
			meetings.Post("/:meetingId/end", v.endMeeting)
			meetings.Post("/:meetingId/close", v.closeMeeting)

			meetings.Get("/:meetingId/participants", v.listParticipant)
			meetings.Post("/:meetingId/participants", v.inviteParticipant)
			meetings.Delete("/:meetingId/participants/:participantId", v.removeParticipant)
			meetings.Put("/:meetingId/participants/me/status", v.respondInvitation)

			meetings.Get("/:meetingId/todos", v.listMeetingTodo)
			meetings.Post("/:meetingId/todos", v.createMeetingTodo)
			meetings.Post("/:meetingId/todos/reorder", v.reorderTodos)

			meetings.Get("/:meetingId/discussions", v.listDiscussionItem)
			meetings.Post("/:meetingId/discussions", v.createDiscussionItem)
			meetings.Post("/:meetingId/discussions/reorder", v.reorderDiscussionItems)
			meetings.Put("/:meetingId/discussions/:itemId", v.editDiscussionItem)
			meetings.Put("/:meetingId/discussions/:itemId/done", v.markDiscussionItemDone)
			meetings.Delete("/:meetingId/discussions/:itemId", v.deleteDiscussionItem)
		}

		todos := api.Group("/todos").Use(v.authMiddleware).Name("Todos API")
		{
			todos.Get("/", v.listOwnedTodo)
			todos.Post("/", v.createTodo)
			todos.Put("/:todoId", v.editTodo)
			todos.Put("/:todoId/status", v.setTodoStatus)
			todos.Delete("/:todoId", v.deleteTodo)
		}
	}
}
