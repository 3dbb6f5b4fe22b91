package echoapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/store"
)

type (
	NavigationResponse struct {
		Role         access.Role         `json:"role"`
		Items        []access.NavItem    `json:"items"`
		Capabilities []access.Capability `json:"capabilities"`
		Routes       []string            `json:"routes"`
	}

	StatusResponse struct {
		store.Status
		Counts store.Counts `json:"counts"`
	}
)

type consoleApi struct {
	store    *store.Store
	now      func() time.Time
	pageSize int
}

func (api *consoleApi) register(g *echo.Group) {
	g.GET("/navigation", api.navigation)
	g.GET("/status", api.status)
}

// dispatch applies action as the role of the request.
func (api *consoleApi) dispatch(ctx echo.Context, action store.Action) error {
	role, err := getContextRole(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context role")
	}
	return api.store.Dispatch(role, action)
}

// notify reports msg on the shared UI status, as an error when failed is set.
func (api *consoleApi) notify(failed bool, msg string) {
	var action store.Action = store.SetSuccess{Message: msg}
	if failed {
		action = store.SetError{Message: msg}
	}
	api.store.Post(access.RoleSystem, action)
}

// outcome is the pair of UI messages a mutation reports.
type outcome struct {
	ok     string
	failed string
}

// mutation builds the messages of verb applied to entity:
// "Teacher created successfully" and "Failed to create teacher".
func mutation(entity, verb, past string) outcome {
	return outcome{
		ok:     fmt.Sprintf("%s %s successfully", entity, past),
		failed: fmt.Sprintf("Failed to %s %s", verb, strings.ToLower(entity)),
	}
}

// report sets the UI message matching err and hands err back.
func (api *consoleApi) report(o outcome, err error) error {
	if err != nil {
		api.notify(true, o.failed)
		return err
	}
	api.notify(false, o.ok)
	return nil
}

func (api *consoleApi) listQuery(ctx echo.Context) (ListQuery, error) {
	var q ListQuery
	if err := q.Bind(ctx, api.pageSize); err != nil {
		return q, err
	}
	return q, nil
}

// Handlers

func (api *consoleApi) navigation(ctx echo.Context) error {
	role, err := getContextRole(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context role")
	}
	return ctx.JSON(http.StatusOK, NavigationResponse{
		Role:         role,
		Items:        access.Navigation(role),
		Capabilities: access.Granted(role),
		Routes:       access.AccessibleRoutes(role),
	})
}

func (api *consoleApi) status(ctx echo.Context) error {
	st := api.store.State()
	return ctx.JSON(http.StatusOK, StatusResponse{Status: st.UI, Counts: st.Counts()})
}
