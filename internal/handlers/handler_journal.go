package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for multipart headers on top of the file itself.
const multipartOverhead = 1 << 20

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService     portssvc.JournalSvcFacade
	maxAttachmentBytes int64
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade, maxAttachmentBytes int64) *journalHandler {
	return &journalHandler{
		journalService:     journalService,
		maxAttachmentBytes: maxAttachmentBytes,
	}
}

// RegisterJournalRoutes registers the journal entry routes.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, maxAttachmentBytes int64) {
	h := newJournalHandler(journalService, maxAttachmentBytes)

	journal := rg.Group("/journal")
	{
		journal.GET("", h.listEntries)
		journal.POST("", h.postEntry)
		journal.GET("/:entry_id", h.getEntry)
		journal.PUT("/:entry_id", h.editEntry)
		journal.DELETE("/:entry_id", h.deleteEntry)
		journal.POST("/:entry_id/submit", h.changeStatus(domain.Submitted))
		journal.POST("/:entry_id/approve", h.changeStatus(domain.Approved))
		journal.POST("/:entry_id/reject", h.changeStatus(domain.Rejected))
		journal.POST("/:entry_id/attachment", h.uploadAttachment)
		journal.GET("/:entry_id/attachment", h.downloadAttachment)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Records a balanced set of at least two lines in one book. Amounts are rounded to 2 places.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Journal entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unbalanced entry"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Book or account not found"
// @Security BearerAuth
// @Router /journal [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists the entries of a book, newest date first. Pass next_token from a previous page to continue.
// @Tags journal
// @Produce  json
// @Param   book_id query int true "Book ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (1-500)"
// @Param   next_token query string false "Token for the next page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	window, err := params.DateRange()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	page, err := h.journalService.ListEntries(c.Request.Context(), userID, params.BookID, window, limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(page))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce  json
// @Param   entry_id path int true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// editEntry godoc
// @Summary Edit a journal entry
// @Description Updates date and description. When lines are sent they replace all existing lines and must balance.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry_id path int true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/{entry_id} [put]
func (h *journalHandler) editEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.journalService.EditEntry(c.Request.Context(), userID, entryID, req.ToPatch())
	if err != nil {
		respondError(c, err, "Failed to edit journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Param   entry_id path int true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// changeStatus godoc
// @Summary Move a journal entry through its workflow
// @Description Draft entries may be submitted. Submitted entries may be approved or rejected.
// @Tags journal
// @Produce  json
// @Param   entry_id path int true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /journal/{entry_id}/submit [post]
// @Router /journal/{entry_id}/approve [post]
// @Router /journal/{entry_id}/reject [post]
func (h *journalHandler) changeStatus(next domain.EntryStatus) gin.HandlerFunc {
	transition := map[domain.EntryStatus]func(*gin.Context, string, int64) (*domain.JournalEntry, error){
		domain.Submitted: func(c *gin.Context, userID string, id int64) (*domain.JournalEntry, error) {
			return h.journalService.SubmitEntry(c.Request.Context(), userID, id)
		},
		domain.Approved: func(c *gin.Context, userID string, id int64) (*domain.JournalEntry, error) {
			return h.journalService.ApproveEntry(c.Request.Context(), userID, id)
		},
		domain.Rejected: func(c *gin.Context, userID string, id int64) (*domain.JournalEntry, error) {
			return h.journalService.RejectEntry(c.Request.Context(), userID, id)
		},
	}[next]

	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		entryID, ok := pathID(c, "entry_id")
		if !ok {
			return
		}
		entry, err := transition(c, userID, entryID)
		if err != nil {
			respondError(c, err, fmt.Sprintf("Failed to move journal entry to %s", next))
			return
		}
		c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
	}
}

// uploadAttachment godoc
// @Summary Attach a file to a journal entry
// @Description Stores the uploaded file and links it to the entry, replacing any previous attachment.
// @Tags journal
// @Accept  multipart/form-data
// @Produce  json
// @Param   entry_id path int true "Entry ID"
// @Param   file formData file true "Attachment"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 503 {object} ErrorResponse "Attachment storage disabled"
// @Security BearerAuth
// @Router /journal/{entry_id}/attachment [post]
func (h *journalHandler) uploadAttachment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAttachmentBytes+multipartOverhead)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondTooLarge(c)
			return
		}
		respondBindError(c, fmt.Errorf("multipart field \"file\" is required: %w", err))
		return
	}
	if header.Size > h.maxAttachmentBytes {
		h.respondTooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, h.maxAttachmentBytes+1))
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return
	}

	logger.Info("Received attachment", slog.Int64("entry_id", entryID), slog.Int("bytes", len(content)))
	entry, err := h.journalService.AttachFile(c.Request.Context(), userID, entryID, header.Filename, content)
	if err != nil {
		respondError(c, err, "Failed to attach file")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) respondTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error: fmt.Sprintf("attachment exceeds %d bytes", h.maxAttachmentBytes),
		Code:  apperrors.Kind(apperrors.ErrValidation),
	})
}

// downloadAttachment godoc
// @Summary Download the attachment of a journal entry
// @Tags journal
// @Produce  octet-stream
// @Param   entry_id path int true "Entry ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/{entry_id}/attachment [get]
func (h *journalHandler) downloadAttachment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}
	name, content, err := h.journalService.GetAttachment(c.Request.Context(), userID, entryID)
	if err != nil {
		respondError(c, err, "Failed to read attachment")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, content)
}
