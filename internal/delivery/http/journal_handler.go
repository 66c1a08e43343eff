package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/usecase"
)

// DefaultListLimit is how many entries the listing endpoint returns.
const DefaultListLimit = 10

// JournalHandler handles entry processing and the journal CRUD endpoints.
type JournalHandler struct {
	journal *usecase.JournalService
	backend string
}

// NewJournalHandler creates a new JournalHandler. backend names the active
// storage backend for save responses.
func NewJournalHandler(journal *usecase.JournalService, backend string) *JournalHandler {
	return &JournalHandler{journal: journal, backend: backend}
}

// ProcessEntry reformats raw notes into a structured entry via the LLM.
// POST /api/process-entry
func (h *JournalHandler) ProcessEntry(c echo.Context) error {
	var req dto.ProcessEntryRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Text == "" {
		return BadRequestResponse(c, "No text provided")
	}

	entry, err := h.journal.ProcessEntry(c.Request().Context(), req.Text, req.Market())
	if err != nil {
		if errors.Is(err, domain.ErrNoAPIKey) {
			return BadRequestResponse(c, "API key not configured")
		}
		return InternalServerErrorResponse(c, "Failed to process entry", err)
	}

	return SuccessResponse(c, entry)
}

// SaveJournal persists processed entries.
// POST /api/save-journal
func (h *JournalHandler) SaveJournal(c echo.Context) error {
	var req dto.SaveJournalRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if len(req.Entries) == 0 {
		return BadRequestResponse(c, "No entries to save")
	}

	username := middleware.GetUsername(c)
	count, err := h.journal.SaveEntries(c.Request().Context(), username, req.Entries)
	if err != nil {
		return h.storeError(c, "Failed to save entry", err)
	}

	return SuccessResponse(c, dto.SaveJournalResult{Count: count, Mode: h.backend})
}

// ViewJournal returns the full rendered journal text.
// GET /api/view-journal
func (h *JournalHandler) ViewJournal(c echo.Context) error {
	username := middleware.GetUsername(c)
	content, err := h.journal.ViewJournal(c.Request().Context(), username)
	if err != nil {
		return h.storeError(c, "Failed to read journal", err)
	}

	if content == "" {
		return SuccessMessageResponse(c, "No journal entries found", map[string]interface{}{
			"content": nil,
		})
	}
	return SuccessResponse(c, map[string]string{"content": content})
}

// ListEntries returns the last entries with previews, most recent first.
// GET /api/list-entries
func (h *JournalHandler) ListEntries(c echo.Context) error {
	username := middleware.GetUsername(c)
	entries, err := h.journal.ListEntries(c.Request().Context(), username, DefaultListLimit)
	if err != nil {
		return h.storeError(c, "Failed to list entries", err)
	}

	views := make([]dto.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, dto.NewEntryView(e))
	}

	if len(views) == 0 {
		return SuccessMessageResponse(c, "No journal entries found", map[string]interface{}{
			"entries": views,
		})
	}
	return SuccessResponse(c, map[string]interface{}{"entries": views})
}

// UpdateEntry replaces the content of an entry by positional index.
// POST /api/update-entry
func (h *JournalHandler) UpdateEntry(c echo.Context) error {
	var req dto.UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Index == nil {
		return BadRequestResponse(c, "Missing entry index")
	}
	if req.Content == "" {
		return BadRequestResponse(c, "Missing content")
	}

	username := middleware.GetUsername(c)
	if err := h.journal.UpdateEntry(c.Request().Context(), username, *req.Index, req.Content); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "Entry not found")
		}
		return h.storeError(c, "Failed to update entry", err)
	}

	return SuccessMessageResponse(c, "Entry updated", nil)
}

// DeleteEntry removes an entry by positional index.
// POST /api/delete-entry
func (h *JournalHandler) DeleteEntry(c echo.Context) error {
	var req dto.DeleteEntryRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Index == nil {
		return BadRequestResponse(c, "Missing entry index")
	}

	username := middleware.GetUsername(c)
	deleted, err := h.journal.DeleteEntry(c.Request().Context(), username, *req.Index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "Entry not found")
		}
		return h.storeError(c, "Failed to delete entry", err)
	}

	return SuccessResponse(c, map[string]string{"deleted": deleted.Timestamp})
}

// ClearJournal removes every entry from the user's journal.
// POST /api/clear-journal
func (h *JournalHandler) ClearJournal(c echo.Context) error {
	username := middleware.GetUsername(c)
	if err := h.journal.ClearJournal(c.Request().Context(), username); err != nil {
		return h.storeError(c, "Failed to clear journal", err)
	}
	return SuccessMessageResponse(c, "Journal cleared", nil)
}

// storeError maps store failures to the API error contract: unsupported
// backend operations are client errors, a locked journal file gets its
// specific message, anything else is a 500.
func (h *JournalHandler) storeError(c echo.Context, message string, err error) error {
	if errors.Is(err, domain.ErrUnsupported) {
		return BadRequestResponse(c, "Operation not supported by the document journal")
	}
	if errors.Is(err, domain.ErrLocked) {
		return InternalServerErrorResponse(c, "Journal file is open in another program", err)
	}
	return InternalServerErrorResponse(c, message, err)
}
