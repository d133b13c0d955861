package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/services"
)

// BankHandler handles monthly bank balances and statement imports.
type BankHandler struct {
	bankService services.BankServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankServicer) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// UpsertBalanceRequest represents the request payload for a monthly balance.
type UpsertBalanceRequest struct {
	Year    int     `json:"year" binding:"required,min=1900,max=2200"`
	Month   int     `json:"month" binding:"required,min=1,max=12"`
	Balance float64 `json:"balance"`
}

// UpsertBalance records or replaces the bank balance for a month.
// @Summary     Upsert a monthly bank balance
// @Description Record the bank balance for a calendar month, replacing any existing value
// @Tags        bank
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertBalanceRequest true "Monthly balance"
// @Success     200 {object} models.MonthlyBankBalance "Saved balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank/balances [put]
func (h *BankHandler) UpsertBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := h.bankService.UpsertMonthlyBalance(userID, req.Year, req.Month, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetBalances lists the user's monthly bank balances.
// @Summary     Get monthly bank balances
// @Description Get monthly bank balances in chronological order, optionally filtered by year
// @Tags        bank
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Filter by year"
// @Success     200 {array} models.MonthlyBankBalance "Balances"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank/balances [get]
func (h *BankHandler) GetBalances(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var year *int
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = &y
	}

	balances, err := h.bankService.GetMonthlyBalances(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// GetMonthlyAggregates returns per-month totals over imported transactions.
// @Summary     Get monthly aggregates
// @Description Get per-month income, expense, and net totals computed from imported transactions
// @Tags        bank
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Success     200 {array} services.MonthlyAggregate "Monthly aggregates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank/monthly-aggregates [get]
func (h *BankHandler) GetMonthlyAggregates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}

	aggregates, err := h.bankService.GetMonthlyAggregates(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"aggregates": aggregates})
}

// statementDateFormats are tried in order when parsing a statement row date.
var statementDateFormats = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// ImportStatement imports a CSV bank statement.
// @Summary     Import a bank statement
// @Description Upload a CSV statement (columns: date, description, amount); rows become imported transactions with auto-assigned categories
// @Tags        bank
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "CSV statement file"
// @Success     201 {object} services.ImportResult "Import summary"
// @Failure     400 {object} ErrorResponse "Invalid file or rows"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank/import [post]
func (h *BankHandler) ImportStatement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A CSV file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	rows, err := parseStatementCSV(file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.bankService.ImportStatement(userID, rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// parseStatementCSV converts a CSV stream into statement rows. Expects three
// columns per record: date, description, amount. A header row is skipped when
// its amount column is not numeric.
func parseStatementCSV(r io.Reader) ([]services.StatementRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var rows []services.StatementRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed CSV: "+err.Error())
		}
		if len(record) < 3 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Each row needs date, description, and amount columns")
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount: "+record[2])
		}
		first = false

		date, err := parseStatementDate(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date: "+record[0])
		}

		rows = append(rows, services.StatementRow{
			Date:        date,
			Description: strings.TrimSpace(record[1]),
			Amount:      amount,
		})
	}

	return rows, nil
}

func parseStatementDate(s string) (time.Time, error) {
	var lastErr error
	for _, format := range statementDateFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
