package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/service"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/internal/domain/workflow"
	"github.com/garyjia/leave-master/internal/i18n"
	"github.com/garyjia/leave-master/internal/interfaces/view"
	"github.com/garyjia/leave-master/pkg/utils"
)

// PageHandlers renders the HTML pages
type PageHandlers struct {
	services Services
	logger   *zap.Logger
}

// NewPageHandlers creates a new PageHandlers instance
func NewPageHandlers(services Services, logger *zap.Logger) *PageHandlers {
	return &PageHandlers{services: services, logger: logger}
}

type alertView struct {
	Kind string
	Text string
}

type layoutData struct {
	Locale    string
	RequestID string
	Alert     *alertView
}

type createPageData struct {
	layoutData
	Model service.CreateFormModel
}

type listPageData struct {
	layoutData
	View       view.ListView
	Failed     bool
	Filter     entity.LeaveFilter
	TableHref  template.URL
	ExportHref template.URL
}

type detailPageData struct {
	layoutData
	ID               int64
	Record           entity.LeaveRecord
	Draft            entity.LeaveRecord
	Editing          bool
	LeaveTypes       []string
	ApprovalStatuses []string
	SaveHref         string
	EditHref         string
	CancelHref       string
}

// leaveForm is the create form body. The required tags mirror the
// browser-side required attributes.
type leaveForm struct {
	Title          string `form:"title" binding:"required"`
	LeaveType      string `form:"leave_type" binding:"required"`
	LeaveDate      string `form:"leave_date" binding:"required"`
	ApprovalStatus string `form:"aproval" binding:"required"`
	Holiday        string `form:"holidays"`
}

func (f leaveForm) record() entity.LeaveRecord {
	return entity.LeaveRecord{
		Title:          utils.SanitizeString(f.Title),
		LeaveType:      f.LeaveType,
		LeaveDate:      f.LeaveDate,
		ApprovalStatus: f.ApprovalStatus,
		Holiday:        f.Holiday,
	}
}

// editForm is the detail edit body
type editForm struct {
	LeaveType      *string `form:"leave_type"`
	LeaveDate      *string `form:"leave_date"`
	ApprovalStatus *string `form:"aproval"`
}

func (f editForm) patch() entity.LeavePatch {
	return entity.LeavePatch{
		LeaveType:      f.LeaveType,
		LeaveDate:      f.LeaveDate,
		ApprovalStatus: f.ApprovalStatus,
	}
}

func (h *PageHandlers) layout(c *gin.Context) layoutData {
	return layoutData{
		Locale:    localeOf(c),
		RequestID: c.GetString(ctxRequestID),
	}
}

func renderAlert(ctx context.Context, alert *service.Alert) *alertView {
	if alert == nil {
		return nil
	}
	return &alertView{
		Kind: string(alert.Kind),
		Text: i18n.T(ctx, alert.MessageID, map[string]any{"Detail": alert.Detail}),
	}
}

// discardStale drops the response of a request whose client went away
func (h *PageHandlers) discardStale(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrStale) {
		return false
	}
	h.logger.Debug("Request cancelled before render", zap.String("path", c.Request.URL.Path))
	c.Abort()
	return true
}

// CreatePage handles GET /
func (h *PageHandlers) CreatePage(c *gin.Context) {
	model, err := h.services.Form.Mount(c.Request.Context())
	if h.discardStale(c, err) {
		return
	}
	c.HTML(http.StatusOK, "create.html", createPageData{layoutData: h.layout(c), Model: model})
}

// SubmitCreate handles POST /
func (h *PageHandlers) SubmitCreate(c *gin.Context) {
	var form leaveForm
	if err := c.ShouldBind(&form); err != nil {
		// Submit reports which fields are missing
		h.logger.Debug("Create form failed binding", zap.Error(err))
	}

	ctx := c.Request.Context()
	result, err := h.services.Form.Submit(ctx, form.record())
	if h.discardStale(c, err) {
		return
	}

	model, mountErr := h.services.Form.Mount(ctx)
	if h.discardStale(c, mountErr) {
		return
	}
	model.Draft = result.Draft
	model.Alert = result.Alert

	status := http.StatusOK
	switch {
	case errors.Is(err, service.ErrRequiredField):
		status = http.StatusBadRequest
	case err != nil:
		status = http.StatusBadGateway
	}

	data := createPageData{layoutData: h.layout(c), Model: model}
	data.Alert = renderAlert(c.Request.Context(), result.Alert)
	c.HTML(status, "create.html", data)
}

// DataPage handles GET /data-page. The table is rendered in its loading
// state and fetched by the page script.
func (h *PageHandlers) DataPage(c *gin.Context) {
	var filter entity.LeaveFilter
	_ = c.ShouldBindQuery(&filter)

	state := service.NewListState()
	query := filterQuery(filter)
	c.HTML(http.StatusOK, "list.html", listPageData{
		layoutData: h.layout(c),
		View:       view.RenderList(state.Records, state.Loading),
		Filter:     filter,
		TableHref:  template.URL("/data-page/table" + query),
		ExportHref: template.URL("/data-page/export.xlsx" + query),
	})
}

// DataTable handles GET /data-page/table
func (h *PageHandlers) DataTable(c *gin.Context) {
	var filter entity.LeaveFilter
	_ = c.ShouldBindQuery(&filter)

	state, err := h.services.Master.Mount(c.Request.Context(), filter)
	if h.discardStale(c, err) {
		return
	}

	status := http.StatusOK
	if state.Failed {
		status = http.StatusBadGateway
	}
	c.HTML(status, "table.html", listPageData{
		layoutData: h.layout(c),
		View:       view.RenderList(state.Records, state.Loading),
		Failed:     state.Failed,
		Filter:     filter,
	})
}

// DetailPage handles GET /:id and GET /:id?mode=edit
func (h *PageHandlers) DetailPage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	editor, err := h.services.Detail.Load(c.Request.Context(), id, workflow.StateViewing)
	if h.discardStale(c, err) {
		return
	}
	if err != nil {
		h.notFound(c)
		return
	}

	if workflow.ParseMode(c.Query("mode")) == workflow.StateEditing {
		if err := editor.Edit(c.Request.Context()); err != nil {
			h.logger.Warn("Failed to enter edit mode", zap.Int64("id", id), zap.Error(err))
		}
	}

	h.renderDetail(c, http.StatusOK, editor)
}

// SaveDetail handles POST /:id
func (h *PageHandlers) SaveDetail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var form editForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Invalid edit form", zap.Int64("id", id), zap.Error(err))
	}

	ctx := c.Request.Context()
	editor, err := h.services.Detail.Load(ctx, id, workflow.StateEditing)
	if h.discardStale(c, err) {
		return
	}
	if err != nil {
		h.notFound(c)
		return
	}

	if err := editor.SetDraft(form.patch()); err != nil {
		h.logger.Error("Failed to apply edit form", zap.Int64("id", id), zap.Error(err))
	}

	status := http.StatusOK
	if err := editor.Save(ctx); err != nil {
		if h.discardStale(c, err) {
			return
		}
		status = http.StatusBadGateway
	}
	h.renderDetail(c, status, editor)
}

// CancelDetail handles POST /:id/cancel
func (h *PageHandlers) CancelDetail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	editor, err := h.services.Detail.Load(c.Request.Context(), id, workflow.StateEditing)
	if h.discardStale(c, err) {
		return
	}
	if err != nil {
		h.notFound(c)
		return
	}
	if err := editor.Cancel(c.Request.Context()); err != nil {
		h.logger.Warn("Failed to cancel edit", zap.Int64("id", id), zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, view.EditHref(editor.ID()))
}

func (h *PageHandlers) renderDetail(c *gin.Context, status int, editor *service.Editor) {
	data := detailPageData{
		layoutData:       h.layout(c),
		ID:               editor.ID(),
		Record:           editor.Record(),
		Draft:            editor.Draft(),
		Editing:          editor.Editing(),
		LeaveTypes:       editor.LeaveTypes(),
		ApprovalStatuses: editor.ApprovalStatuses(),
		SaveHref:         view.EditHref(editor.ID()),
		EditHref:         view.EditHref(editor.ID()) + "?mode=edit",
		CancelHref:       view.EditHref(editor.ID()) + "/cancel",
	}
	data.Alert = renderAlert(c.Request.Context(), editor.Alert())
	c.HTML(status, "detail.html", data)
}

func (h *PageHandlers) parseID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		h.logger.Debug("Invalid leave id", zap.String("id", c.Param("id")), zap.Error(err))
		h.notFound(c)
		return 0, false
	}
	return id, true
}

func (h *PageHandlers) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", h.layout(c))
}

// filterQuery encodes a filter as a query string, empty for the zero filter
func filterQuery(filter entity.LeaveFilter) string {
	if filter.IsZero() {
		return ""
	}
	q := url.Values{}
	if filter.Title != "" {
		q.Set("title", filter.Title)
	}
	if filter.LeaveType != "" {
		q.Set("leave_type", filter.LeaveType)
	}
	if filter.ApprovalStatus != "" {
		q.Set("aproval", filter.ApprovalStatus)
	}
	return "?" + q.Encode()
}
