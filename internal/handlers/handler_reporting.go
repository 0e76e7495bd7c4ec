package handlers

import (
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the ledger and financial report routes.
type reportingHandler struct {
	balanceService   portssvc.BalanceSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// RegisterReportingRoutes registers report routes under /journal.
func RegisterReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{balanceService: balanceService, reportingService: reportingService}

	reports := rg.Group("/journal")
	{
		reports.GET("/ledger/:account_id", h.getLedger)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// bindReport reads the book and date window of a report request.
func bindReport(c *gin.Context) (string, int64, domain.DateRange, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return "", 0, domain.DateRange{}, false
	}
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return "", 0, domain.DateRange{}, false
	}
	window, err := params.DateRange()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return "", 0, domain.DateRange{}, false
	}
	return userID, params.BookID, window, true
}

// getLedger godoc
// @Summary General ledger of an account
// @Description Lists the account's lines in posting order with a running debit minus credit balance.
// @Tags reports
// @Produce  json
// @Param   account_id path int true "Account ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/ledger/{account_id} [get]
func (h *reportingHandler) getLedger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "account_id")
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	window, err := params.DateRange()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	ledger, err := h.balanceService.Ledger(c.Request.Context(), userID, accountID, window)
	if err != nil {
		respondError(c, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// getTrialBalance godoc
// @Summary Trial balance
// @Tags reports
// @Produce  json
// @Param   book_id query int true "Book ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	userID, bookID, window, ok := bindReport(c)
	if !ok {
		return
	}
	tb, err := h.reportingService.TrialBalance(c.Request.Context(), userID, bookID, window)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getIncomeStatement godoc
// @Summary Income statement
// @Tags reports
// @Produce  json
// @Param   book_id query int true "Book ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	userID, bookID, window, ok := bindReport(c)
	if !ok {
		return
	}
	is, err := h.reportingService.IncomeStatement(c.Request.Context(), userID, bookID, window)
	if err != nil {
		respondError(c, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(is))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Equity includes a synthetic Net Income row with a null account_id.
// @Tags reports
// @Produce  json
// @Param   book_id query int true "Book ID"
// @Param   start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	userID, bookID, window, ok := bindReport(c)
	if !ok {
		return
	}
	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), userID, bookID, window)
	if err != nil {
		respondError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(bs))
}
