package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/apperr"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/internal/session"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// pageDTO is the data of every listing response.
type pageDTO struct {
	SessionID string       `json:"session_id"`
	Kind      session.Kind `json:"kind"`
	Window    string       `json:"window"`
	Generated int          `json:"generated"`
	Truncated bool         `json:"truncated"`
	Common    []string     `json:"common,omitempty"`
	Schedules interface{}  `json:"schedules"`
}

func invalid(err error, message string) *apperr.Error {
	return apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status, message)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.store.Len(),
	})
}

func (h *Handler) Plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalid(err, "invalid payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, invalid(err, "invalid payload"))
		return
	}
	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		respondError(c, invalid(err, "invalid time window"))
		return
	}
	order, err := scheduler.ParseOrder(req.Order)
	if err != nil {
		respondError(c, invalid(err, "invalid order"))
		return
	}

	h.runPlan(c, scheduler.PlanRequest{
		Courses:   req.Courses,
		Rows:      h.rowsOr(courseRows(req.Rows)),
		Preferred: model.PreferredSections(req.Preferred),
		Window:    window,
		Order:     order,
	})
}

func (h *Handler) PlanJoint(c *gin.Context) {
	var req JointPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalid(err, "invalid payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(c, invalid(err, "invalid payload"))
		return
	}
	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		respondError(c, invalid(err, "invalid time window"))
		return
	}

	h.runJoint(c, scheduler.JointPlanRequest{
		Person1: scheduler.Person{Courses: req.Person1.Courses, Preferred: model.PreferredSections(req.Person1.Preferred)},
		Person2: scheduler.Person{Courses: req.Person2.Courses, Preferred: model.PreferredSections(req.Person2.Preferred)},
		Rows:    h.rowsOr(courseRows(req.Rows)),
		Window:  window,
	})
}

// Upload plans from a multipart course table. The "courses" field lists the
// codes; a non-empty "partner" field switches to a joint plan, with
// "partner_preferred" as the partner's preferred sections file.
func (h *Handler) Upload(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, invalid(err, "a course file is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, apperr.Wrap(err, apperr.ErrInvalidFile.Code, apperr.ErrInvalidFile.Status, apperr.ErrInvalidFile.Message))
		return
	}
	defer f.Close()
	rows, err := csvio.ReadCourseRows(f, h.delim)
	if err != nil {
		respondError(c, apperr.Wrap(err, apperr.ErrInvalidFile.Code, apperr.ErrInvalidFile.Status, apperr.ErrInvalidFile.Message))
		return
	}

	preferred, err := h.formPreferred(c, "preferred")
	if err != nil {
		respondError(c, err)
		return
	}
	partnerPreferred, err := h.formPreferred(c, "partner_preferred")
	if err != nil {
		respondError(c, err)
		return
	}

	window, err := parseWindow(c.PostForm("start"), c.PostForm("end"))
	if err != nil {
		respondError(c, invalid(err, "invalid time window"))
		return
	}
	order, err := scheduler.ParseOrder(c.PostForm("order"))
	if err != nil {
		respondError(c, invalid(err, "invalid order"))
		return
	}

	h.log.Info("course table uploaded", zap.String("file", header.Filename), zap.Int("rows", len(rows)))

	courses := splitCodes(c.PostForm("courses"))
	if partner := splitCodes(c.PostForm("partner")); len(partner) > 0 {
		h.runJoint(c, scheduler.JointPlanRequest{
			Person1: scheduler.Person{Courses: courses, Preferred: preferred},
			Person2: scheduler.Person{Courses: partner, Preferred: partnerPreferred},
			Rows:    rows,
			Window:  window,
		})
		return
	}
	h.runPlan(c, scheduler.PlanRequest{
		Courses:   courses,
		Rows:      rows,
		Preferred: preferred,
		Window:    window,
		Order:     order,
	})
}

// formPreferred reads an optional preferred sections file part.
func (h *Handler) formPreferred(c *gin.Context, field string) (model.PreferredSections, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return model.PreferredSections{}, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, invalid(err, field+" file could not be read")
	}
	defer f.Close()
	preferred, err := csvio.ReadPreferred(f, h.delim)
	if err != nil {
		return nil, invalid(err, field+" file could not be parsed")
	}
	return preferred, nil
}

func (h *Handler) runPlan(c *gin.Context, req scheduler.PlanRequest) {
	out, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	sess := &session.Session{
		Kind:      session.KindSingle,
		Window:    out.Window,
		Generated: out.Generated,
		Truncated: out.Truncated,
		Schedules: out.Schedules,
	}
	h.store.Save(sess)
	h.log.Debug("session created", zap.String("session", sess.ID), zap.Int("schedules", sess.Len()))
	h.respondPage(c, sess, 1, map[string]interface{}{"report": out.Report})
}

func (h *Handler) runJoint(c *gin.Context, req scheduler.JointPlanRequest) {
	out, err := h.planner.PlanJoint(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	sess := &session.Session{
		Kind:      session.KindJoint,
		Window:    out.Window,
		Generated: out.Generated,
		Truncated: out.Truncated,
		Common:    out.Common,
		Joint:     out.Schedules,
	}
	h.store.Save(sess)
	h.log.Debug("session created", zap.String("session", sess.ID), zap.Int("schedules", sess.Len()))
	h.respondPage(c, sess, 1, map[string]interface{}{"reports": out.Reports})
}

// Session returns a further page of a stored result.
func (h *Handler) Session(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			respondError(c, invalid(err, "page must be a positive integer"))
			return
		}
		page = p
	}
	h.respondPage(c, sess, page, nil)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// PDF renders the schedule at a 1-based index of a session.
func (h *Handler) PDF(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 || index > sess.Len() {
		respondError(c, apperr.Clone(apperr.ErrNotFound, "schedule not found"))
		return
	}

	title := fmt.Sprintf("Program %d", index)
	var data []byte
	if sess.Kind == session.KindJoint {
		data, err = h.pdf.RenderJoint(sess.Joint[index-1], sess.Common, title)
	} else {
		data, err = h.pdf.RenderSchedule(sess.Schedules[index-1], title)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="program-%d.pdf"`, index))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		respondError(c, apperr.Clone(apperr.ErrNotFound, "session not found or expired"))
		return nil, false
	}
	return sess, true
}

func (h *Handler) respondPage(c *gin.Context, sess *session.Session, page int, meta map[string]interface{}) {
	offset := (page - 1) * h.pageSize
	var (
		items interface{}
		more  bool
	)
	if sess.Kind == session.KindJoint {
		var joint []*model.JointSchedule
		joint, more = scheduler.Page(sess.Joint, page-1, h.pageSize)
		list := make([]jointScheduleDTO, len(joint))
		for i, j := range joint {
			list[i] = newJointScheduleDTO(offset+i+1, j)
		}
		items = list
	} else {
		var schedules []*model.Schedule
		schedules, more = scheduler.Page(sess.Schedules, page-1, h.pageSize)
		list := make([]scheduleDTO, len(schedules))
		for i, s := range schedules {
			list[i] = newScheduleDTO(offset+i+1, s)
		}
		items = list
	}

	respondJSON(c, http.StatusOK, pageDTO{
		SessionID: sess.ID,
		Kind:      sess.Kind,
		Window:    sess.Window.String(),
		Generated: sess.Generated,
		Truncated: sess.Truncated,
		Common:    sess.Common,
		Schedules: items,
	}, &Pagination{Page: page, PageSize: h.pageSize, TotalCount: sess.Len(), HasMore: more}, meta)
}

func (h *Handler) rowsOr(rows []*model.CourseRow) []*model.CourseRow {
	if len(rows) == 0 {
		return h.rows
	}
	return rows
}

func splitCodes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
}
