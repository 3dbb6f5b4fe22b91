package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/export"
	"github.com/schoolhub/console/core/form"
	"github.com/schoolhub/console/core/listview"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
	"github.com/schoolhub/console/core/studentform"
)

const (
	msgStudentDeleted      = "Student deleted successfully"
	msgStudentDeleteFailed = "Failed to delete student"
	msgStudentsDeleteFail  = "Failed to delete some students"
)

var studentSearchFields = []string{"firstName", "lastName", "email", "grade", "className"}

type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

func (api *consoleApi) registerStudents(g *echo.Group) {
	sg := g.Group("/students")
	sg.GET("", api.queryStudents, routeMiddleware("/students"))
	sg.DELETE("", api.destroyStudents, routeMiddleware("/students"))
	sg.POST("", api.createStudent, routeMiddleware("/students/create"))
	sg.GET("/export", api.exportStudents, routeMiddleware("/students"))

	// detail endpoints
	sg.GET("/:id", api.retrieveStudent, routeMiddleware("/students/[id]"))
	sg.PUT("/:id", api.updateStudent, routeMiddleware("/students/[id]/edit"))
	sg.DELETE("/:id", api.destroyStudent, routeMiddleware("/students/[id]"))
}

// bindStudentForm applies the known form fields of the request body onto f.
func bindStudentForm(ctx echo.Context, f *form.State) error {
	var data map[string]string
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding student form")
	}
	for _, field := range studentform.Fields {
		if v, ok := data[field]; ok {
			f.Change(field, v)
		}
	}
	return nil
}

// Handlers

func (api *consoleApi) queryStudents(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, apply(q, studentSearchFields, api.store.State().Students))
}

func (api *consoleApi) retrieveStudent(ctx echo.Context) error {
	id := ctx.Param("id")
	student, ok := api.store.State().StudentByID(id)
	if !ok {
		return errors.Wrapf(core.ErrNotFound, "student %q", id)
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *consoleApi) createStudent(ctx echo.Context) error {
	role, err := getContextRole(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context role")
	}
	f := form.New(studentform.InitialValues())
	if err = bindStudentForm(ctx, f); err != nil {
		return err
	}
	student, err := studentform.Submit(api.store, role, f, "", api.now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, student)
}

func (api *consoleApi) updateStudent(ctx echo.Context) error {
	role, err := getContextRole(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context role")
	}
	id := ctx.Param("id")
	existing, ok := api.store.State().StudentByID(id)
	if !ok {
		return errors.Wrapf(core.ErrNotFound, "student %q", id)
	}
	f := form.New(studentform.Values(existing))
	if err = bindStudentForm(ctx, f); err != nil {
		return err
	}
	student, err := studentform.Submit(api.store, role, f, id, api.now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *consoleApi) destroyStudent(ctx echo.Context) error {
	if err := api.dispatch(ctx, store.DeleteStudent{ID: ctx.Param("id")}); err != nil {
		api.notify(true, msgStudentDeleteFailed)
		return errors.Wrap(err, "deleting student")
	}
	api.notify(false, msgStudentDeleted)
	return ctx.NoContent(http.StatusNoContent)
}

// destroyStudents deletes every student of ?ids=a,b (or repeated ids params).
func (api *consoleApi) destroyStudents(ctx echo.Context) error {
	role, err := getContextRole(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context role")
	}
	var ids []string
	for _, param := range ctx.QueryParams()["ids"] {
		for _, id := range strings.Split(param, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "ids", Error: "This field is required"})
	}

	deleted, err := api.store.DeleteStudents(role, ids...)
	if err != nil {
		api.notify(true, msgStudentsDeleteFail)
		return err
	}
	api.notify(false, fmt.Sprintf("%d students deleted successfully", deleted))
	return ctx.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// exportStudents writes the filtered, sorted student list (all pages) as an attachment.
func (api *consoleApi) exportStudents(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(ctx.QueryParam("format"))
	if err != nil {
		return err
	}

	v := listview.NewView[school.Student](studentSearchFields, q.SortField)
	v.SortDir = q.SortDir
	v.SetSearch(q.Search)
	students := v.Items(api.store.State().Students)

	var buf bytes.Buffer
	if err = export.Write(&buf, format, students); err != nil {
		return errors.Wrap(err, "exporting students")
	}
	api.notify(false, export.MsgExported)

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.FileName(format, api.now())),
	)
	return ctx.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
