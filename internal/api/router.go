package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "mdtboard/internal/api/context"
	"mdtboard/internal/api/handlers"
	"mdtboard/internal/api/middleware"
)

type Dependencies struct {
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	PatientHandler   *handlers.PatientHandler
	MeetingHandler   *handlers.MeetingHandler
	AgendaHandler    *handlers.AgendaHandler
	DecisionHandler  *handlers.DecisionHandler
	FileHandler      *handlers.FileHandler
	DashboardHandler *handlers.DashboardHandler
	HealthHandler    *handlers.HealthHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	authMid := deps.AuthMiddleware

	// Authentication
	router.POST("/api/v1/auth/register", wrap(deps.AuthHandler.Register))
	router.POST("/api/v1/auth/login", wrap(deps.AuthHandler.Login))
	router.POST("/api/v1/auth/session", wrap(deps.AuthHandler.Session))
	router.GET("/api/v1/auth/me", chain(deps.AuthHandler.Me, authMid.Handle))
	router.POST("/api/v1/auth/logout", wrap(deps.AuthHandler.Logout))

	// Users
	router.GET("/api/v1/users", chain(deps.UserHandler.List, authMid.Handle))
	router.GET("/api/v1/users/:user_id", chain(deps.UserHandler.Get, authMid.Handle))
	router.PUT("/api/v1/users/:user_id", chain(deps.UserHandler.Update, authMid.Handle))

	// Patients
	router.GET("/api/v1/patients", chain(deps.PatientHandler.List, authMid.Handle))
	router.POST("/api/v1/patients", chain(deps.PatientHandler.Create, authMid.Handle))
	router.GET("/api/v1/patients/:patient_id", chain(deps.PatientHandler.Get, authMid.Handle))
	router.PUT("/api/v1/patients/:patient_id", chain(deps.PatientHandler.Update, authMid.Handle))
	router.DELETE("/api/v1/patients/:patient_id", chain(deps.PatientHandler.Delete, authMid.Handle))

	// Meetings
	router.GET("/api/v1/meetings", chain(deps.MeetingHandler.List, authMid.Handle))
	router.POST("/api/v1/meetings", chain(deps.MeetingHandler.Create, authMid.Handle))
	router.GET("/api/v1/meetings/:meeting_id", chain(deps.MeetingHandler.Get, authMid.Handle))
	router.PUT("/api/v1/meetings/:meeting_id", chain(deps.MeetingHandler.Update, authMid.Handle))
	router.DELETE("/api/v1/meetings/:meeting_id", chain(deps.MeetingHandler.Cancel, authMid.Handle))

	// Participants
	router.POST("/api/v1/meetings/:meeting_id/participants", chain(deps.MeetingHandler.AddParticipant, authMid.Handle))
	router.PUT("/api/v1/meetings/:meeting_id/respond", chain(deps.MeetingHandler.Respond, authMid.Handle))
	router.DELETE("/api/v1/meetings/:meeting_id/participants/:user_id", chain(deps.MeetingHandler.RemoveParticipant, authMid.Handle))

	// Case links
	router.POST("/api/v1/meetings/:meeting_id/patients", chain(deps.MeetingHandler.AddCase, authMid.Handle))
	router.DELETE("/api/v1/meetings/:meeting_id/patients/:patient_id", chain(deps.MeetingHandler.RemoveCase, authMid.Handle))

	// Agenda
	router.POST("/api/v1/meetings/:meeting_id/agenda", chain(deps.AgendaHandler.Add, authMid.Handle))
	router.PUT("/api/v1/meetings/:meeting_id/agenda/:item_id", chain(deps.AgendaHandler.Update, authMid.Handle))
	router.DELETE("/api/v1/meetings/:meeting_id/agenda/:item_id", chain(deps.AgendaHandler.Delete, authMid.Handle))

	// Decisions
	router.POST("/api/v1/meetings/:meeting_id/decisions", chain(deps.DecisionHandler.Create, authMid.Handle))
	router.PUT("/api/v1/meetings/:meeting_id/decisions/:decision_id", chain(deps.DecisionHandler.Update, authMid.Handle))

	// Files
	router.POST("/api/v1/meetings/:meeting_id/files", chain(deps.FileHandler.Upload, authMid.Handle))
	router.GET("/api/v1/files/:file_id", chain(deps.FileHandler.Download, authMid.Handle))
	router.DELETE("/api/v1/files/:file_id", chain(deps.FileHandler.Delete, authMid.Handle))

	// Dashboard
	router.GET("/api/v1/dashboard/stats", chain(deps.DashboardHandler.Stats, authMid.Handle))

	// Health
	router.GET("/api/v1/health", wrap(deps.HealthHandler.Check))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
