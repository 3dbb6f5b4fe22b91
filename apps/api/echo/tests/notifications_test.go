package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/listview"
	"github.com/schoolhub/console/core/school"
)

func notificationIDs(items []school.Notification) []string {
	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotifications(t *testing.T) {
	app := setup(t)
	teacher := app.token(t, access.RoleTeacher)
	student := app.token(t, access.RoleStudent)

	list := func(query string) []string {
		rec := app.serve(http.MethodGet, "/v1/notifications"+query, teacher)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return notificationIDs(decode[listview.Page[school.Notification]](t, rec).Items)
	}

	assert.Equal(t, []string{"notif-001", "notif-002"}, list(""))
	assert.Equal(t, []string{"notif-002", "notif-001"}, list("?ordering=createdAt"))
	assert.Equal(t, []string{"notif-002"}, list("?search=conference"))

	rec := app.serve(http.MethodPut, "/v1/notifications/notif-001/read", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[school.Notification](t, rec).IsRead)
	assert.Equal(t, []string{"notif-002"}, list("?unread=true"))
	assert.Equal(t, 1, app.store.State().Counts().Unread)
	assert.Equal(t, "Notification marked as read", app.store.State().UI.Success)

	rec = app.serve(http.MethodPost, "/v1/notifications", teacher, []byte(`{"title": "Field trip", "message": "Zoo on Friday", "type": "event", "recipientType": "all"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[school.Notification](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsRead)
	assert.True(t, created.CreatedAt.Equal(app.clock.Now()))
	assert.Equal(t, school.RecipientAll, created.RecipientType)
	assert.Equal(t, "Notification sent successfully", app.store.State().UI.Success)

	// the sample notifications were posted later that morning
	assert.Equal(t, []string{"notif-001", "notif-002", created.ID}, list("?page_size=10"))

	runHTTPTests(t, app, []httpTest{
		{name: "student cannot list", path: "/v1/notifications", token: student, wantCode: http.StatusForbidden},
		{name: "student cannot create", method: http.MethodPost, path: "/v1/notifications", token: student, body: []byte(`{"title": "x", "message": "y"}`), wantCode: http.StatusForbidden},
		{
			name: "validation", method: http.MethodPost, path: "/v1/notifications", token: teacher,
			body: []byte(`{"title": " ", "message": "y", "recipientType": "everyone"}`), wantCode: http.StatusBadRequest,
		},
		{name: "mark missing", method: http.MethodPut, path: "/v1/notifications/notif-404/read", token: student, wantCode: http.StatusNotFound},
		{name: "parent removes", method: http.MethodDelete, path: "/v1/notifications/notif-002", token: app.token(t, access.RoleParent), wantCode: http.StatusNoContent},
		{name: "remove missing", method: http.MethodDelete, path: "/v1/notifications/notif-002", token: teacher, wantCode: http.StatusNotFound},
	})
	assert.Equal(t, []string{"notif-001", created.ID}, list(""))
	assert.Equal(t, "Failed to delete notification", app.store.State().UI.Error)

	rec = app.serve(http.MethodDelete, "/v1/notifications/"+created.ID, teacher)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Notification deleted successfully", app.store.State().UI.Success)
}
