package echoapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/listview"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
)

var (
	notificationSearchFields = []string{"title", "message", "type"}

	notificationCreate = mutation("Notification", "send", "sent")
	notificationDelete = mutation("Notification", "delete", "deleted")
	notificationRead   = outcome{ok: "Notification marked as read", failed: "Failed to mark notification as read"}
)

func (api *consoleApi) registerNotifications(g *echo.Group) {
	ng := g.Group("/notifications")
	ng.GET("", api.queryNotifications, routeMiddleware("/communication"))
	ng.POST("", api.createNotification, routeMiddleware("/communication"))
	ng.DELETE("/:id", api.destroyNotification, routeMiddleware("/communication"))

	// any signed-in role may mark a notification read
	ng.PUT("/:id/read", api.markNotificationRead)
}

// queryNotifications lists notifications, newest first unless ordering says otherwise.
// ?unread=true keeps unread ones only.
func (api *consoleApi) queryNotifications(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	if q.SortField == "" && ctx.QueryParam(orderParam) == "" {
		q.SortField = "createdAt"
		q.SortDir = listview.Desc
	}
	items := api.store.State().Notifications
	if unread, _ := strconv.ParseBool(ctx.QueryParam("unread")); unread {
		kept := make([]school.Notification, 0, len(items))
		for _, n := range items {
			if !n.IsRead {
				kept = append(kept, n)
			}
		}
		items = kept
	}
	return ctx.JSON(http.StatusOK, apply(q, notificationSearchFields, items))
}

func (api *consoleApi) createNotification(ctx echo.Context) error {
	var data school.NewNotification
	if err := bindValid(ctx, &data); err != nil {
		return err
	}
	action := store.AddNotification{
		Notification: data,
		ID:           uuid.NewString(),
		CreatedAt:    api.now().UTC(),
	}
	if err := api.report(notificationCreate, api.dispatch(ctx, action)); err != nil {
		return errors.Wrap(err, "adding notification")
	}
	n, _ := api.store.State().NotificationByID(action.ID)
	return ctx.JSON(http.StatusCreated, n)
}

func (api *consoleApi) markNotificationRead(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.report(notificationRead, api.dispatch(ctx, store.MarkNotificationRead{ID: id})); err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	n, ok := api.store.State().NotificationByID(id)
	if !ok {
		return errors.Wrapf(core.ErrNotFound, "notification %q", id)
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *consoleApi) destroyNotification(ctx echo.Context) error {
	if err := api.report(notificationDelete, api.dispatch(ctx, store.RemoveNotification{ID: ctx.Param("id")})); err != nil {
		return errors.Wrap(err, "removing notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}
