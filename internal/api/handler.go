package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/language"

	"github.com/investimentigrugno/fluxxo/internal/domain/dto"
	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/middleware"
	"github.com/investimentigrugno/fluxxo/internal/screener"
	"github.com/investimentigrugno/fluxxo/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Handler provides HTTP handlers for the screener endpoints.
//
// Responsibilities:
//   - Decode JSON bodies (an empty body decodes to defaults)
//   - Call the screener service with the request context
//   - Translate service results into response DTOs
//   - Map service errors to status codes with localized messages
type Handler struct {
	svc  service.ScreenerService
	lang language.Tag
}

// NewHandler constructs a Handler. defaultLang is used when the caller's
// Accept-Language matches no supported language ("en" or "it").
func NewHandler(svc service.ScreenerService, defaultLang string) *Handler {
	return &Handler{svc: svc, lang: parseDefaultLang(defaultLang)}
}

type scanFunc func(ctx context.Context, p models.QueryParameters) (models.ScanResult, error)

// Scan godoc
// @Summary      Scan the market
// @Description  Runs the baseline screen plus the optional filter overlay. Rows are sorted by market cap, at most 100.
// @Tags         screener
// @Accept       json
// @Produce      json
// @Param        Accept-Language  header    string             false  "en or it"
// @Param        body             body      dto.ScanRequest    false  "Filter selection"
// @Success      200              {object}  dto.ScanResponse   "Success"
// @Failure      400              {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500              {object}  dto.ErrorResponse  "Upstream or internal error"
// @Router       /api/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	h.scan(c, h.svc.Scan)
}

// MultiScan godoc
// @Summary      Scan and rank
// @Description  Same screen as /api/scan; every row is annotated with scores and sorted by investment score.
// @Tags         screener
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScanRequest    false  "Filter selection"
// @Success      200   {object}  dto.ScanResponse   "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Upstream or internal error"
// @Router       /api/screener/multi-scan [post]
func (h *Handler) MultiScan(c *gin.Context) {
	h.scan(c, h.svc.MultiScan)
}

func (h *Handler) scan(c *gin.Context, run scanFunc) {
	p := h.printer(c)

	var req dto.ScanRequest
	if err := decodeBody(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgInvalidBody), err)
		return
	}

	res, err := run(c.Request.Context(), models.QueryParameters{FilterType: models.ParseFilterType(req.FilterType)})
	if err != nil {
		h.fail(c, err, "")
		return
	}

	resp := dto.NewScanResponse(res, h.svc.Source())
	if resp.Count == 0 {
		resp.Message = p.Sprintf(msgNoResults)
	}
	c.JSON(http.StatusOK, resp)
}

// Fundamental godoc
// @Summary      Fundamental data for one ticker
// @Description  Looks up an exchange-qualified ticker and returns its fundamental and technical columns. Missing values are null.
// @Tags         screener
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TickerRequest        true  "Ticker"
// @Success      200   {object}  dto.FundamentalResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse        "Ticker missing"
// @Failure      404   {object}  dto.ErrorResponse        "No data for the ticker"
// @Failure      500   {object}  dto.ErrorResponse        "Upstream or internal error"
// @Router       /api/fundamental [post]
func (h *Handler) Fundamental(c *gin.Context) {
	h.fundamental(c, screener.ProfileFundamental)
}

// BasicFundamental godoc
// @Summary      Compact fundamental data
// @Description  Five-column lookup (name, close, market cap, P/E, EPS) over the basic market list.
// @Tags         screener
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TickerRequest        true  "Ticker"
// @Success      200   {object}  dto.FundamentalResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse        "Ticker missing"
// @Failure      404   {object}  dto.ErrorResponse        "No data for the ticker"
// @Failure      500   {object}  dto.ErrorResponse        "Upstream or internal error"
// @Router       /api/screener/analyze-fundamental/fundamental [post]
func (h *Handler) BasicFundamental(c *gin.Context) {
	h.fundamental(c, screener.ProfileBasic)
}

func (h *Handler) fundamental(c *gin.Context, profile string) {
	ticker, ok := h.tickerRequest(c)
	if !ok {
		return
	}
	row, err := h.svc.Fundamental(c.Request.Context(), ticker, profile)
	if err != nil {
		h.fail(c, err, ticker)
		return
	}
	c.JSON(http.StatusOK, dto.FundamentalResponse{FundamentalData: row})
}

// TickerInfo godoc
// @Summary      Quote and profile for one ticker
// @Description  Merges the market-data quote with the screener profile: price, currency, name and sector.
// @Tags         ticker
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TickerRequest       true  "Ticker"
// @Success      200   {object}  dto.TickerInfoResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse       "Ticker missing"
// @Failure      404   {object}  dto.ErrorResponse       "No data for the ticker"
// @Failure      500   {object}  dto.ErrorResponse       "Upstream or internal error"
// @Router       /api/ticker/info [post]
func (h *Handler) TickerInfo(c *gin.Context) {
	ticker, ok := h.tickerRequest(c)
	if !ok {
		return
	}
	info, err := h.svc.TickerInfo(c.Request.Context(), ticker)
	if err != nil {
		h.fail(c, err, ticker)
		return
	}
	c.JSON(http.StatusOK, dto.TickerInfoResponse{
		Price:    info.Price,
		Currency: info.Currency,
		Name:     info.Name,
		Sector:   info.Sector,
	})
}

// Analyze godoc
// @Summary      Rule-based fundamental analysis
// @Description  Evaluates valuation, quality and leverage. When data is omitted the fundamentals are fetched first.
// @Tags         screener
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AnalyzeRequest    true  "Ticker and optional data"
// @Success      200   {object}  dto.AnalysisResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse     "Ticker missing"
// @Failure      404   {object}  dto.ErrorResponse     "No data for the ticker"
// @Failure      500   {object}  dto.ErrorResponse     "Upstream or internal error"
// @Router       /api/screener/analyze-fundamental [post]
func (h *Handler) Analyze(c *gin.Context) {
	p := h.printer(c)

	var req dto.AnalyzeRequest
	if err := decodeBody(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgInvalidBody), err)
		return
	}
	ticker := models.NormalizeTicker(req.Ticker)
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgTickerRequired), nil)
		return
	}

	a, err := h.svc.Analyze(c.Request.Context(), ticker, req.Data)
	if err != nil {
		h.fail(c, err, ticker)
		return
	}
	c.JSON(http.StatusOK, dto.AnalysisResponse{Analysis: a})
}

// History godoc
// @Summary      Recent scans
// @Description  Lists the most recent scan runs from the audit log, newest first.
// @Tags         screener
// @Produce      json
// @Param        limit  query     int                  false  "Number of runs (1-100)"  default(20)
// @Success      200    {object}  dto.HistoryResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse    "Invalid limit"
// @Failure      503    {object}  dto.ErrorResponse    "Audit log disabled"
// @Router       /api/scan/history [get]
func (h *Handler) History(c *gin.Context) {
	p := h.printer(c)

	limit := defaultHistoryLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxHistoryLimit {
			middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgInvalidLimit), err)
			return
		}
		limit = n
	}

	runs, err := h.svc.History(c.Request.Context(), limit)
	if errors.Is(err, service.ErrHistoryDisabled) {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, p.Sprintf(msgHistoryDisabled), err)
		return
	}
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if runs == nil {
		runs = []models.ScanRun{}
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Runs: runs, Count: len(runs)})
}

// tickerRequest decodes a {ticker} body. It writes the 400 response and
// reports false when the body is malformed or the ticker is blank.
func (h *Handler) tickerRequest(c *gin.Context) (string, bool) {
	p := h.printer(c)

	var req dto.TickerRequest
	if err := decodeBody(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgInvalidBody), err)
		return "", false
	}
	ticker := models.NormalizeTicker(req.Ticker)
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, p.Sprintf(msgTickerRequired), nil)
		return "", false
	}
	return ticker, true
}

// fail maps a service error onto the response status.
func (h *Handler) fail(c *gin.Context, err error, ticker string) {
	p := h.printer(c)
	switch {
	case errors.Is(err, service.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, p.Sprintf(msgNoData, ticker), err)
	case errors.Is(err, service.ErrUpstream):
		middleware.AbortWithError(c, http.StatusInternalServerError, p.Sprintf(msgUpstream), err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, p.Sprintf(msgInternal), err)
	}
}

// decodeBody reads a JSON body into dst. An absent or blank body leaves
// dst untouched; anything after the first JSON value is rejected.
func decodeBody(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
