package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
)

var (
	teacherSearchFields = []string{"firstName", "lastName", "email", "department", "subjects"}
	classSearchFields   = []string{"name", "grade", "teacherName", "room"}
	parentSearchFields  = []string{"firstName", "lastName", "email", "phone", "relationship"}

	teacherCreate = mutation("Teacher", "create", "created")
	teacherUpdate = mutation("Teacher", "update", "updated")
	teacherDelete = mutation("Teacher", "delete", "deleted")
	classCreate   = mutation("Class", "create", "created")
	classUpdate   = mutation("Class", "update", "updated")
	classDelete   = mutation("Class", "delete", "deleted")
	parentCreate  = mutation("Parent", "create", "created")
	parentUpdate  = mutation("Parent", "update", "updated")
	parentDelete  = mutation("Parent", "delete", "deleted")
)

// registerDirectory mounts teachers, classes and parents.
func (api *consoleApi) registerDirectory(g *echo.Group) {
	tg := g.Group("/teachers")
	tg.GET("", api.queryTeachers, routeMiddleware("/teachers"))
	tg.POST("", api.createTeacher, routeMiddleware("/teachers/create"))
	tg.GET("/:id", api.retrieveTeacher, routeMiddleware("/teachers/[id]"))
	tg.PATCH("/:id", api.updateTeacher, routeMiddleware("/teachers/[id]/edit"))
	tg.DELETE("/:id", api.destroyTeacher, routeMiddleware("/teachers/[id]"))
	tg.GET("/:id/classes", api.teacherClasses, routeMiddleware("/teachers/[id]"))

	cg := g.Group("/classes")
	cg.GET("", api.queryClasses, routeMiddleware("/classes"))
	cg.POST("", api.createClass, routeMiddleware("/classes/create"))
	cg.GET("/:id", api.retrieveClass, routeMiddleware("/classes/[id]"))
	cg.PATCH("/:id", api.updateClass, routeMiddleware("/classes/[id]/edit"))
	cg.DELETE("/:id", api.destroyClass, routeMiddleware("/classes/[id]/edit"))
	cg.GET("/:id/students", api.classStudents, routeMiddleware("/classes/[id]"))

	pg := g.Group("/parents")
	pg.GET("", api.queryParents, routeMiddleware("/parents"))
	pg.POST("", api.createParent, routeMiddleware("/parents/create"))
	pg.GET("/:id", api.retrieveParent, routeMiddleware("/parents/[id]"))
	pg.PATCH("/:id", api.updateParent, routeMiddleware("/parents/[id]"))
	pg.DELETE("/:id", api.destroyParent, routeMiddleware("/parents/[id]"))
	pg.GET("/:id/students", api.parentStudents, routeMiddleware("/parents/[id]"))
}

func retrieve[T school.Entity](ctx echo.Context, items []T, kind string) error {
	id := ctx.Param("id")
	item, ok := store.GetByID(items, id)
	if !ok {
		return errors.Wrapf(core.ErrNotFound, "%s %q", kind, id)
	}
	return ctx.JSON(http.StatusOK, item)
}

// bindValid binds the request body onto data and validates it.
func bindValid(ctx echo.Context, data interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, data); err != nil {
		return errors.Wrapf(err, "binding to %T", data)
	}
	return core.Validate.Struct(data)
}

// teacherCaption resolves the teacher name shown on a class. An empty id has no caption.
func teacherCaption(st store.State, teacherID string) (string, error) {
	if teacherID == "" {
		return "", nil
	}
	teacher, ok := st.TeacherByID(teacherID)
	if !ok {
		return "", core.NewValidationError(nil, core.FieldError{Field: "teacherId", Error: "Unknown teacher"})
	}
	return teacher.FullName(), nil
}

// Teachers

func (api *consoleApi) queryTeachers(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, apply(q, teacherSearchFields, api.store.State().Teachers))
}

func (api *consoleApi) retrieveTeacher(ctx echo.Context) error {
	return retrieve(ctx, api.store.State().Teachers, "teacher")
}

func (api *consoleApi) createTeacher(ctx echo.Context) error {
	var data school.Teacher
	if err := bindValid(ctx, &data); err != nil {
		return err
	}
	data.ID = uuid.NewString()
	if err := api.report(teacherCreate, api.dispatch(ctx, store.AddTeacher{Teacher: data})); err != nil {
		return errors.Wrap(err, "adding teacher")
	}
	return ctx.JSON(http.StatusCreated, data)
}

func (api *consoleApi) updateTeacher(ctx echo.Context) error {
	var patch school.TeacherPatch
	if err := bindValid(ctx, &patch); err != nil {
		return err
	}
	patch.ID = ctx.Param("id")
	if err := api.report(teacherUpdate, api.dispatch(ctx, store.UpdateTeacher{Patch: patch})); err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return retrieve(ctx, api.store.State().Teachers, "teacher")
}

func (api *consoleApi) destroyTeacher(ctx echo.Context) error {
	if err := api.report(teacherDelete, api.dispatch(ctx, store.DeleteTeacher{ID: ctx.Param("id")})); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *consoleApi) teacherClasses(ctx echo.Context) error {
	st := api.store.State()
	id := ctx.Param("id")
	if _, ok := st.TeacherByID(id); !ok {
		return errors.Wrapf(core.ErrNotFound, "teacher %q", id)
	}
	return ctx.JSON(http.StatusOK, store.ClassesByTeacher(st, id))
}

// Classes

func (api *consoleApi) queryClasses(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, apply(q, classSearchFields, api.store.State().Classes))
}

func (api *consoleApi) retrieveClass(ctx echo.Context) error {
	return retrieve(ctx, api.store.State().Classes, "class")
}

func (api *consoleApi) createClass(ctx echo.Context) error {
	var data school.Class
	if err := bindValid(ctx, &data); err != nil {
		return err
	}
	name, err := teacherCaption(api.store.State(), data.TeacherID)
	if err != nil {
		return err
	}
	data.ID = uuid.NewString()
	data.TeacherName = name
	if err := api.report(classCreate, api.dispatch(ctx, store.AddClass{Class: data})); err != nil {
		return errors.Wrap(err, "adding class")
	}
	return ctx.JSON(http.StatusCreated, data)
}

func (api *consoleApi) updateClass(ctx echo.Context) error {
	var patch school.ClassPatch
	if err := bindValid(ctx, &patch); err != nil {
		return err
	}
	patch.ID = ctx.Param("id")
	patch.TeacherName = nil // derived from teacherId only
	if patch.TeacherID != nil {
		name, err := teacherCaption(api.store.State(), *patch.TeacherID)
		if err != nil {
			return err
		}
		patch.TeacherName = &name
	}
	if err := api.report(classUpdate, api.dispatch(ctx, store.UpdateClass{Patch: patch})); err != nil {
		return errors.Wrap(err, "updating class")
	}
	return retrieve(ctx, api.store.State().Classes, "class")
}

func (api *consoleApi) destroyClass(ctx echo.Context) error {
	if err := api.report(classDelete, api.dispatch(ctx, store.DeleteClass{ID: ctx.Param("id")})); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *consoleApi) classStudents(ctx echo.Context) error {
	st := api.store.State()
	id := ctx.Param("id")
	if _, ok := st.ClassByID(id); !ok {
		return errors.Wrapf(core.ErrNotFound, "class %q", id)
	}
	return ctx.JSON(http.StatusOK, store.StudentsByClass(st, id))
}

// Parents

func (api *consoleApi) queryParents(ctx echo.Context) error {
	q, err := api.listQuery(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, apply(q, parentSearchFields, api.store.State().Parents))
}

func (api *consoleApi) retrieveParent(ctx echo.Context) error {
	return retrieve(ctx, api.store.State().Parents, "parent")
}

func (api *consoleApi) createParent(ctx echo.Context) error {
	var data school.Parent
	if err := bindValid(ctx, &data); err != nil {
		return err
	}
	data.ID = uuid.NewString()
	if err := api.report(parentCreate, api.dispatch(ctx, store.AddParent{Parent: data})); err != nil {
		return errors.Wrap(err, "adding parent")
	}
	return ctx.JSON(http.StatusCreated, data)
}

func (api *consoleApi) updateParent(ctx echo.Context) error {
	var patch school.ParentPatch
	if err := bindValid(ctx, &patch); err != nil {
		return err
	}
	patch.ID = ctx.Param("id")
	if err := api.report(parentUpdate, api.dispatch(ctx, store.UpdateParent{Patch: patch})); err != nil {
		return errors.Wrap(err, "updating parent")
	}
	return retrieve(ctx, api.store.State().Parents, "parent")
}

func (api *consoleApi) destroyParent(ctx echo.Context) error {
	if err := api.report(parentDelete, api.dispatch(ctx, store.DeleteParent{ID: ctx.Param("id")})); err != nil {
		return errors.Wrap(err, "deleting parent")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *consoleApi) parentStudents(ctx echo.Context) error {
	st := api.store.State()
	id := ctx.Param("id")
	if _, ok := st.ParentByID(id); !ok {
		return errors.Wrapf(core.ErrNotFound, "parent %q", id)
	}
	return ctx.JSON(http.StatusOK, store.StudentsByParent(st, id))
}
