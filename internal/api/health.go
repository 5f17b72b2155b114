package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /health, /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (pings the audit database when one is configured).
type HealthHandler struct {
	dbPing func() error // nil when the audit log is disabled
}

// NewHealthHandler constructs a HealthHandler with the provided dbPing function.
//
// Parameters:
//   - dbPing (func() error): Typically db.Ping from *sql.DB. A nil function
//     makes /readyz always report ready.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /health, GET /healthz: Always return 200 OK.
//   - GET /readyz: Returns 200 OK if dbPing succeeds, 503 if the database is not reachable.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/health", h.live)
	r.GET("/healthz", h.live)
	r.GET("/readyz", h.ready)
}

// live godoc
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) live(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// ready godoc
// @Summary      Readiness probe
// @Description  Returns ready if the service dependencies (DB) are reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if h.dbPing != nil && h.dbPing() != nil {
		c.JSON(503, gin.H{"status": "degraded"})
		return
	}
	c.JSON(200, gin.H{"status": "ready"})
}
