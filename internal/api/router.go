package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"eldercare-backend/config"
	"eldercare-backend/internal/chat"
	"eldercare-backend/internal/clock"
	"eldercare-backend/internal/meds"
	"eldercare-backend/internal/mw"
	"eldercare-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, medsSvc *meds.Service, hub *chat.Hub, clk clock.Clock, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	secret := []byte(cfg.Auth.JWTSecret)
	handler := NewHandler(s, medsSvc, hub, clk, webpushOptions, secret, cfg.Auth.TokenTTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), int(cfg.Server.RateLimitPerSec))
	requireAuth := mw.RequireAuth(secret)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)

		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(requireAuth)
		{
			authed.POST("/seniors", handler.CreateSenior)
			authed.GET("/seniors/:senior_id", handler.GetSenior)
			authed.POST("/seniors/:senior_id/care-team", handler.AddCareTeamMember)
			authed.GET("/seniors/:senior_id/care-team", handler.ListCareTeam)

			authed.POST("/seniors/:senior_id/medications", handler.CreateMedication)
			authed.GET("/seniors/:senior_id/medications", handler.ListMedications)
			authed.POST("/medications/:medication_id/schedule", handler.CreateSchedule)
			authed.POST("/medications/:medication_id/take", handler.TakeMedication)
			authed.POST("/intakes", handler.CreateIntake)
			authed.GET("/seniors/:senior_id/intakes", handler.ListIntakes)

			authed.POST("/seniors/:senior_id/reminders", handler.CreateReminder)
			authed.GET("/seniors/:senior_id/reminders", handler.ListReminders)
			authed.POST("/reminders/:reminder_id/done", handler.DoneReminder)
			authed.POST("/reminders/:reminder_id/skip", handler.SkipReminder)

			authed.POST("/seniors/:senior_id/appointments", handler.CreateAppointment)
			authed.GET("/seniors/:senior_id/appointments", handler.ListAppointments)
			authed.PATCH("/appointments/:appointment_id/status", handler.UpdateAppointmentStatus)
			authed.POST("/appointments/:appointment_id/notes", handler.CreateAppointmentNote)
			authed.GET("/appointments/:appointment_id/notes", handler.ListAppointmentNotes)

			authed.GET("/seniors/:senior_id/report", caching, handler.GetHealthReport)
			authed.GET("/seniors/:senior_id/stats", handler.GetAdherenceStats)

			authed.GET("/seniors/:senior_id/conversations", handler.ListConversations)
			authed.GET("/conversations/:conversation_id/messages", handler.ListMessages)
			authed.GET("/ws/conversations/:conversation_id", handler.ServeConversation)

			authed.GET("/subscriptions", handler.GetSubscription)
			authed.PUT("/subscriptions", handler.PutSubscription)
			authed.DELETE("/subscriptions", handler.DeleteSubscription)
		}
	}

	return r
}
