package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"

	"github.com/Deepanshumelkani77/Grievance-system/internal/app"
	"github.com/Deepanshumelkani77/Grievance-system/internal/config"
	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/controllers"
	"github.com/Deepanshumelkani77/Grievance-system/internal/middleware"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/repositories"
	"github.com/Deepanshumelkani77/Grievance-system/internal/routes"
	"github.com/Deepanshumelkani77/Grievance-system/internal/seeding"
	"github.com/Deepanshumelkani77/Grievance-system/internal/services"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

func main() {
	utils.InitLogger("grievance-service")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize grievance-service:", err)
	}
	defer application.Close()

	userRepo := repositories.NewUserRepository(application.DB)
	complaintRepo := repositories.NewComplaintRepository(application.DB)
	logRepo := repositories.NewComplaintLogRepository(application.DB)

	if cfg.SeedDefaultUsers {
		if err := seeding.SeedDefaultAuthorityUsers(context.Background(), userRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed default authority users")
		}
	}

	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	notifier := services.NewSendGridNotifier(cfg, sgClient)

	routingService := services.NewRoutingService(userRepo)
	complaintService := services.NewComplaintService(
		cfg,
		complaintRepo,
		logRepo,
		userRepo,
		routingService,
		notifier,
	)
	authService := services.NewAuthService(cfg, userRepo)

	authController := controllers.NewAuthController(authService)
	complaintsController := controllers.NewComplaintsController(complaintService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthSignup, authController.SignupHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.AuthMe, authController.MeHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.ComplaintsSubmit, complaintsController.SubmitHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ComplaintsMy, complaintsController.ListMyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ComplaintsLogs, complaintsController.ComplaintHistoryHandler).Methods(http.MethodGet)

	// Authority-only workflow actions
	authority := router.NewRoute().Subrouter()
	authority.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRoles(constants.AuthorityRoles()...),
	)
	authority.HandleFunc(routes.ComplaintsAccept, complaintsController.AcceptHandler).Methods(http.MethodPut)
	authority.HandleFunc(routes.ComplaintsReject, complaintsController.RejectHandler).Methods(http.MethodPut)
	authority.HandleFunc(routes.ComplaintsEscalate, complaintsController.EscalateHandler).Methods(http.MethodPut)
	authority.HandleFunc(routes.ComplaintsAssigned, complaintsController.ListAssignedHandler).Methods(http.MethodGet)
	authority.HandleFunc(routes.ComplaintsBackfill, complaintsController.BackfillHandler).Methods(http.MethodPost)

	// Resolve and override are open to the director as well
	resolver := router.NewRoute().Subrouter()
	resolver.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRoles(append(constants.AuthorityRoles(), models.RoleDirector)...),
	)
	resolver.HandleFunc(routes.ComplaintsResolve, complaintsController.ResolveHandler).Methods(http.MethodPut)
	resolver.HandleFunc(routes.ComplaintsStatus, complaintsController.UpdateStatusHandler).Methods(http.MethodPut)

	// Director-only oversight
	director := router.NewRoute().Subrouter()
	director.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRoles(models.RoleDirector),
	)
	director.HandleFunc(routes.ComplaintsAll, complaintsController.ListAllHandler).Methods(http.MethodGet)
	director.HandleFunc(routes.ComplaintsLogsAll, complaintsController.ListAllLogsHandler).Methods(http.MethodGet)

	c := cron.New()
	_, cronErr := c.AddFunc("0 8 * * *", func() {
		if e := complaintService.LogOpenComplaintsSummary(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Daily open complaints summary failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule daily summary cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("grievance-service failed to start:", err)
	}
}
