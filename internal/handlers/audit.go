package handlers

import (
	"net/http"
	"strconv"
	"strings"

	audit "home_energy_audit"
	"home_energy_audit/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInvalidYear     = "invalid 'year'; expected an integer"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Evaluate an audit
// @Description  Runs the full pipeline on one input record: fills absent fields from era defaults, computes heating/cooling/DHW loads, maps them to fuel, prices the result and ranks retrofit recommendations. Absent or zero fields in the body are resolved, never rejected.
// @Tags         audit
// @Accept       json
// @Produce      json
// @Param        sort  query   string             false  "Recommendation ordering"  Enums(dollars,co2)
// @Param        body  body    audit.InputRecord  true   "Raw input record (all fields optional)"
// @Success      200   {object}  audit.AuditResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/audit [post]
// @Security     BearerAuth
func (h *Handler) evaluateAudit(c *gin.Context) {
	var in audit.InputRecord
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	params := service.EvaluateParams{
		Sort: strings.ToLower(strings.TrimSpace(c.Query("sort"))),
	}

	result, err := h.services.Audit.Evaluate(c.Request.Context(), in, params)
	if err != nil {
		// The computation itself cannot fail; err means the run record was
		// not persisted. The result is still valid, so return it.
		if h.log != nil {
			h.log.Errorw("audit_run_save_failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Era defaults preview
// @Description  Returns the envelope assumptions that would back-fill an audit of a house built in the given year. Missing or non-positive year falls back to the 1990 era bin.
// @Tags         audit
// @Produce      json
// @Param        year  query   int  false  "Construction year"  example(1975)
// @Success      200   {object}  engine.EraDefaults
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/defaults [get]
// @Security     BearerAuth
func (h *Handler) getDefaults(c *gin.Context) {
	year := 0
	if qs := c.Query("year"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidYear})
			return
		}
		year = v
	}
	c.JSON(http.StatusOK, h.services.Audit.Defaults(year))
}
