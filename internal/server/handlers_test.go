package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type listing struct {
	Data struct {
		SessionID string            `json:"session_id"`
		Kind      string            `json:"kind"`
		Window    string            `json:"window"`
		Generated int               `json:"generated"`
		Common    []string          `json:"common"`
		Schedules []json.RawMessage `json:"schedules"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

func newTestRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewHandler(opts).Router()
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, listing) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out listing
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestPlanWithObjectAndPositionalRows(t *testing.T) {
	r := newTestRouter(t, Options{})
	w, out := do(t, r, http.MethodPost, "/plan", map[string]interface{}{
		"courses": []string{"CS101"},
		"rows": []interface{}{
			map[string]string{"section": "1", "courseCode": "CS101", "day": "MONDAY", "start": "09:00", "end": "10:00"},
			[]string{"2", "2", "CS101", "MONDAY", "11:00", "12:00"},
			[]string{"3", "3", "CS101"},
		},
		"start": "08:00",
		"end":   "18:00",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "single", out.Data.Kind)
	assert.Equal(t, "08:00-18:00", out.Data.Window)
	assert.Len(t, out.Data.Schedules, 2)
	assert.NotEmpty(t, out.Data.SessionID)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, 2, out.Pagination.TotalCount)
	assert.False(t, out.Pagination.HasMore)

	var first struct {
		Index      int      `json:"index"`
		FreeDays   []string `json:"free_days"`
		FreeBlocks int      `json:"free_blocks"`
		Options    []struct {
			Label string `json:"label"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(out.Data.Schedules[0], &first))
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, []string{"TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}, first.FreeDays)
	assert.Equal(t, 23, first.FreeBlocks)
}

func TestPlanValidation(t *testing.T) {
	r := newTestRouter(t, Options{})

	w, out := do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)

	w, _ = do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{"CS101"}, "start": "25:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{"CS101"}, "start": "18:00", "end": "08:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{"CS101"}, "order": "cheapest"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)

	w, out = do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "NO_COURSES", out.Error.Code)
}

func gridRows(courses, sections int) []*model.CourseRow {
	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	var rows []*model.CourseRow
	for c := 0; c < courses; c++ {
		for s := 0; s < sections; s++ {
			rows = append(rows, &model.CourseRow{
				Section:    string(rune('1' + s)),
				CourseCode: string(rune('A'+c)) + "101",
				Day:        days[c],
				Start:      model.Clock(9*60 + s*60).String(),
				End:        model.Clock(9*60 + s*60 + 30).String(),
			})
		}
	}
	return rows
}

func TestSessionPagingAndPDF(t *testing.T) {
	r := newTestRouter(t, Options{PageSize: 2, DefaultRows: gridRows(2, 3)})

	w, out := do(t, r, http.MethodPost, "/plan", map[string]interface{}{"courses": []string{"A101", "B101"}, "order": "free-blocks"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 9, out.Pagination.TotalCount)
	assert.True(t, out.Pagination.HasMore)
	id := out.Data.SessionID

	w, out = do(t, r, http.MethodGet, "/sessions/"+id+"?page=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out.Data.Schedules, 1)
	assert.False(t, out.Pagination.HasMore)

	w, _ = do(t, r, http.MethodGet, "/sessions/"+id+"?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/sessions/"+id+"/9/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w, _ = do(t, r, http.MethodGet, "/sessions/"+id+"/10/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = do(t, r, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanJoint(t *testing.T) {
	r := newTestRouter(t, Options{DefaultRows: []*model.CourseRow{
		{Section: "1", CourseCode: "CS101", Day: "MONDAY", Start: "09:00", End: "10:00"},
		{Section: "2", CourseCode: "CS101", Day: "TUESDAY", Start: "09:00", End: "10:00"},
	}})

	w, out := do(t, r, http.MethodPost, "/plan/joint", map[string]interface{}{
		"person1": map[string]interface{}{"courses": []string{"CS101"}},
		"person2": map[string]interface{}{"courses": []string{"cs101"}, "preferred": map[string][]string{"CS101": {"2"}}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "joint", out.Data.Kind)
	assert.Equal(t, []string{"CS101"}, out.Data.Common)
	require.Len(t, out.Data.Schedules, 1)

	var j struct {
		Person1 []struct {
			Section string `json:"section"`
		} `json:"person1"`
		CommonFreeBlocks int `json:"common_free_blocks"`
	}
	require.NoError(t, json.Unmarshal(out.Data.Schedules[0], &j))
	require.Len(t, j.Person1, 1)
	assert.Equal(t, "2", j.Person1[0].Section)
	assert.Equal(t, 23, j.CommonFreeBlocks)

	w, _ = do(t, r, http.MethodGet, "/sessions/"+out.Data.SessionID+"/1/pdf", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, out = do(t, r, http.MethodPost, "/plan/joint", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_COURSES", out.Error.Code)
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	r := newTestRouter(t, Options{})
	courses := "Seq;Section;Course_Code;Day;Start_Time;End_Time\n" +
		"1;1;CS101;Pazartesi;09:00;10:00\n" +
		"2;2;CS101;Salı;09:00;10:00\n" +
		"3;1;MA101;Pazartesi;09:30;10:30\n"

	body, ct := multipartBody(t, map[string]string{"file": courses}, map[string]string{"courses": "CS101, MA101"})
	req := httptest.NewRequest(http.MethodPost, "/plan/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "single", out.Data.Kind)
	assert.Len(t, out.Data.Schedules, 1)

	body, ct = multipartBody(t,
		map[string]string{"file": courses, "preferred": "Course_Code;Section\nCS101;1\n"},
		map[string]string{"courses": "CS101", "partner": "CS101"})
	req = httptest.NewRequest(http.MethodPost, "/plan/upload", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out = listing{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "joint", out.Data.Kind)
	assert.Len(t, out.Data.Schedules, 1)

	body, ct = multipartBody(t, nil, map[string]string{"courses": "CS101"})
	req = httptest.NewRequest(http.MethodPost, "/plan/upload", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPartnerPreferred(t *testing.T) {
	r := newTestRouter(t, Options{})
	courses := "Seq;Section;Course_Code;Day;Start_Time;End_Time\n" +
		"1;1;CS101;MONDAY;09:00;10:00\n" +
		"2;2;CS101;TUESDAY;09:00;10:00\n"
	post := func(files map[string]string) listing {
		t.Helper()
		body, ct := multipartBody(t, files, map[string]string{"courses": "CS101", "partner": "CS101"})
		req := httptest.NewRequest(http.MethodPost, "/plan/upload", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out listing
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	out := post(map[string]string{"file": courses, "partner_preferred": "Course_Code;Section\nCS101;2\n"})
	assert.Equal(t, "joint", out.Data.Kind)
	require.Len(t, out.Data.Schedules, 1)
	var joint struct {
		Person1 []struct {
			Section string `json:"section"`
		} `json:"person1"`
		Person2 []struct {
			Section string `json:"section"`
		} `json:"person2"`
	}
	require.NoError(t, json.Unmarshal(out.Data.Schedules[0], &joint))
	require.Len(t, joint.Person1, 1)
	require.Len(t, joint.Person2, 1)
	assert.Equal(t, "2", joint.Person1[0].Section)
	assert.Equal(t, "2", joint.Person2[0].Section)

	out = post(map[string]string{
		"file":              courses,
		"preferred":         "Course_Code;Section\nCS101;1\n",
		"partner_preferred": "Course_Code;Section\nCS101;2\n",
	})
	assert.Empty(t, out.Data.Schedules)
}

func TestHealthAndCORS(t *testing.T) {
	r := newTestRouter(t, Options{AllowedOrigins: []string{"http://planner.test/"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://planner.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://planner.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodOptions, "/plan", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPlanHandlerInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(Options{Planner: scheduler.NewPlanner(nil, nil, nil)})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader([]byte(`invalid`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Plan(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSplitCodes(t *testing.T) {
	assert.Equal(t, []string{"CS101", " MA 101", "PH101"}, splitCodes("CS101, MA 101;PH101\n"))
	assert.Empty(t, splitCodes(""))
}
