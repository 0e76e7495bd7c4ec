package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookHandler handles HTTP requests related to books.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bs}
}

// registerBookRoutes registers routes related to books.
func registerBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.GET("", h.listBooks)
		books.POST("", h.createBook)
		books.GET("/:book_id", h.getBook)
		books.PUT("/:book_id", h.renameBook)
		books.DELETE("/:book_id", h.deleteBook)
	}
}

// listBooks godoc
// @Summary List books
// @Description Lists the books owned by the logged-in user
// @Tags books
// @Produce  json
// @Success 200 {array} dto.BookResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	books, err := h.bookService.ListBooks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list books")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

// createBook godoc
// @Summary Create a book
// @Description Creates a new, empty book for the logged-in user
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book body dto.BookRequest true "Book name"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A book with this name already exists"
// @Security BearerAuth
// @Router /books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to create book")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Book created", slog.Int64("book_id", book.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// getBook godoc
// @Summary Get a book
// @Tags books
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	book, err := h.bookService.GetBook(c.Request.Context(), userID, bookID)
	if err != nil {
		respondError(c, err, "Failed to get book")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// renameBook godoc
// @Summary Rename a book
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Param   book body dto.BookRequest true "New name"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id} [put]
func (h *bookHandler) renameBook(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	book, err := h.bookService.RenameBook(c.Request.Context(), userID, bookID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to rename book")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// deleteBook godoc
// @Summary Delete a book
// @Description Deletes an empty book. Books that still hold accounts or entries are rejected.
// @Tags books
// @Param   book_id path int true "Book ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Book is not empty"
// @Security BearerAuth
// @Router /books/{book_id} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	if err := h.bookService.DeleteBook(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err, "Failed to delete book")
		return
	}
	c.Status(http.StatusNoContent)
}
