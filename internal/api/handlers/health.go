package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "connected"
	statusCode := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "unhealthy"
		dbStatus = "disconnected"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, struct {
		Status    string `json:"status"`
		Database  string `json:"database"`
		Timestamp int64  `json:"timestamp"`
	}{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().Unix(),
	})
}
