package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	storeBackend string
}

var healthHandler *HealthHandler

func NewHealthHandler(storeBackend string) *HealthHandler {
	return &HealthHandler{
		storeBackend: storeBackend,
	}
}

func SetupHealthHandler(storeBackend string) {
	healthHandler = NewHealthHandler(storeBackend)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"store":  h.storeBackend,
		"time":   time.Now().Format(time.RFC3339),
	})
}
