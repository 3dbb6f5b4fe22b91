package tests

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	echoapi "github.com/schoolhub/console/apps/api/echo"
	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/export"
	"github.com/schoolhub/console/core/listview"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/studentform"
)

func studentIDs(students []school.Student) []string {
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestStudentQuery(t *testing.T) {
	app := setup(t)
	token := app.token(t, access.RoleTeacher)

	path := func(params ...string) string {
		v := make(url.Values)
		for i := 0; i+1 < len(params); i += 2 {
			v.Add(params[i], params[i+1])
		}
		return "/v1/students?" + v.Encode()
	}

	tests := []struct {
		name      string
		path      string
		wantIDs   []string
		wantPage  int
		wantTotal int
		wantNext  bool
	}{
		{name: "first page", path: path(), wantIDs: []string{"student-001", "student-002"}, wantPage: 1, wantTotal: 3, wantNext: true},
		{name: "second page", path: path("page", "2"), wantIDs: []string{"student-003"}, wantPage: 2, wantTotal: 3},
		{name: "page clamped", path: path("page", "9"), wantIDs: []string{"student-003"}, wantPage: 2, wantTotal: 3},
		{name: "page size", path: path("page_size", "5"), wantIDs: []string{"student-001", "student-002", "student-003"}, wantPage: 1, wantTotal: 3},
		{name: "search class", path: path("search", "8a"), wantIDs: []string{"student-001", "student-003"}, wantPage: 1, wantTotal: 2},
		{name: "search email", path: path("search", "MICHAEL.C@"), wantIDs: []string{"student-002"}, wantPage: 1, wantTotal: 1},
		{name: "search unknown", path: path("search", "zzz"), wantIDs: []string{}, wantPage: 1, wantTotal: 0},
		{name: "ordering -firstName", path: path("ordering", "-firstName"), wantIDs: []string{"student-003", "student-002"}, wantPage: 1, wantTotal: 3, wantNext: true},
		{
			name: "ordering lastName order desc", path: path("ordering", "lastName", "order", "desc"),
			wantIDs: []string{"student-003", "student-001"}, wantPage: 1, wantTotal: 3, wantNext: true,
		},
		{
			name: "search and ordering", path: path("search", "8th", "ordering", "-firstName"),
			wantIDs: []string{"student-003", "student-001"}, wantPage: 1, wantTotal: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(http.MethodGet, tt.path, token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			page := decode[listview.Page[school.Student]](t, rec)
			assert.Equal(t, tt.wantIDs, studentIDs(page.Items))
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantNext, page.HasNext)
		})
	}

	runHTTPTests(t, app, []httpTest{
		{name: "bad order", path: path("order", "sideways"), token: token, wantCode: http.StatusBadRequest},
		{name: "parent forbidden", path: path(), token: app.token(t, access.RoleParent), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "student forbidden", path: path(), token: app.token(t, access.RoleStudent), wantCode: http.StatusForbidden},
	})
}

func TestStudentRetrieve(t *testing.T) {
	app := setup(t)
	emma, _ := app.store.State().StudentByID("student-001")

	runHTTPTests(t, app, []httpTest{
		{name: "found", path: "/v1/students/student-001", token: app.token(t, access.RoleTeacher), wantData: marshalObj(t, emma)},
		{name: "missing", path: "/v1/students/student-404", token: app.token(t, access.RoleAdmin), wantCode: http.StatusNotFound},
		{name: "parent forbidden", path: "/v1/students/student-001", token: app.token(t, access.RoleParent), wantCode: http.StatusForbidden},
	})
}

func TestStudentCreate(t *testing.T) {
	app := setup(t)
	body := []byte(`{
		"firstName": "Liam",
		"lastName": "Brown",
		"email": "liam.b@school.edu",
		"grade": "8th",
		"classId": "class-001",
		"parentId": "parent-001",
		"photo": "ignored"
	}`)

	rec := app.serve(http.MethodPost, "/v1/students", app.token(t, access.RoleTeacher), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	student := decode[school.Student](t, rec)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "8A", student.ClassName)
	assert.Equal(t, "John Johnson", student.ParentName)
	assert.Equal(t, "2024-12-16", student.EnrollmentDate)
	assert.Equal(t, school.StatusActive, student.Status)
	assert.Empty(t, student.Photo)

	st := app.store.State()
	_, ok := st.StudentByID(student.ID)
	assert.True(t, ok)
	assert.Len(t, st.Students, 4)
	assert.Equal(t, studentform.MsgCreated, st.UI.Success)
	assert.False(t, st.UI.Loading)

	runHTTPTests(t, app, []httpTest{
		{
			name: "validation", method: http.MethodPost, path: "/v1/students", token: app.token(t, access.RoleAdmin),
			body:     []byte(`{"firstName": "  ", "lastName": "Brown", "email": "nope", "grade": "8th", "classId": "class-001", "parentId": "parent-001"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"firstName": "This field is required", "email": "Invalid email format"}),
		},
		{name: "malformed body", method: http.MethodPost, path: "/v1/students", token: app.token(t, access.RoleAdmin), body: []byte(`{"firstName": 1`), wantCode: http.StatusBadRequest},
		{name: "parent forbidden", method: http.MethodPost, path: "/v1/students", token: app.token(t, access.RoleParent), body: body, wantCode: http.StatusForbidden},
	})
	assert.Len(t, app.store.State().Students, 4)
}

func TestStudentUpdate(t *testing.T) {
	app := setup(t)
	body := []byte(`{"firstName": "Emily", "classId": "class-002"}`)

	rec := app.serve(http.MethodPut, "/v1/students/student-001", app.token(t, access.RoleAdmin), body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	student := decode[school.Student](t, rec)
	assert.Equal(t, "Emily", student.FirstName)
	assert.Equal(t, "Johnson", student.LastName)
	assert.Equal(t, "9B", student.ClassName)
	assert.Equal(t, "2020-09-01", student.EnrollmentDate)
	assert.NotEmpty(t, student.Photo)
	assert.Equal(t, studentform.MsgUpdated, app.store.State().UI.Success)

	runHTTPTests(t, app, []httpTest{
		{name: "teacher forbidden", method: http.MethodPut, path: "/v1/students/student-001", token: app.token(t, access.RoleTeacher), body: body, wantCode: http.StatusForbidden},
		{name: "missing", method: http.MethodPut, path: "/v1/students/student-404", token: app.token(t, access.RoleAdmin), body: body, wantCode: http.StatusNotFound},
		{
			name: "validation", method: http.MethodPut, path: "/v1/students/student-001", token: app.token(t, access.RoleAdmin),
			body: []byte(`{"lastName": ""}`), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"lastName": "This field is required"}),
		},
	})
}

func TestStudentDelete(t *testing.T) {
	app := setup(t)
	token := app.token(t, access.RoleTeacher)

	rec := app.serve(http.MethodDelete, "/v1/students/student-001", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	st := app.store.State()
	assert.Len(t, st.Students, 2)
	assert.Equal(t, "Student deleted successfully", st.UI.Success)

	rec = app.serve(http.MethodDelete, "/v1/students/student-001", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	st = app.store.State()
	assert.Len(t, st.Students, 2)
	assert.Equal(t, "Failed to delete student", st.UI.Error)
	assert.Empty(t, st.UI.Success)

	rec = app.serve(http.MethodDelete, "/v1/students/student-002", app.token(t, access.RoleStudent))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentBulkDelete(t *testing.T) {
	app := setup(t)
	token := app.token(t, access.RoleAdmin)

	rec := app.serve(http.MethodDelete, "/v1/students?ids=student-001,student-404&ids=student-002", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[echoapi.DeletedResponse](t, rec).Deleted)

	st := app.store.State()
	assert.Equal(t, []string{"student-003"}, studentIDs(st.Students))
	assert.Equal(t, "2 students deleted successfully", st.UI.Success)

	runHTTPTests(t, app, []httpTest{
		{
			name: "ids required", method: http.MethodDelete, path: "/v1/students", token: token,
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"ids": "This field is required"}),
		},
		{name: "parent forbidden", method: http.MethodDelete, path: "/v1/students?ids=student-003", token: app.token(t, access.RoleParent), wantCode: http.StatusForbidden},
	})
	assert.Len(t, app.store.State().Students, 1)
}

func TestStudentExport(t *testing.T) {
	app := setup(t)
	token := app.token(t, access.RoleTeacher)

	rec := app.serve(http.MethodGet, "/v1/students/export?format=csv&search=8th&ordering=-firstName", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="students-2024-12-16.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(export.Header, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "student-003,Sophia"))
	assert.Equal(t, export.MsgExported, app.store.State().UI.Success)

	rec = app.serve(http.MethodGet, "/v1/students/export?format=xlsx", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	runHTTPTests(t, app, []httpTest{
		{name: "unknown format", path: "/v1/students/export?format=pdf", token: token, wantCode: http.StatusBadRequest},
		{name: "parent forbidden", path: "/v1/students/export", token: app.token(t, access.RoleParent), wantCode: http.StatusForbidden},
	})
}
