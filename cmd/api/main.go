package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiftdesk/shiftdesk-backend-go/internal/config"
	appHTTP "github.com/shiftdesk/shiftdesk-backend-go/internal/handler/http"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/cron"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/database"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/jwt"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/pkg/sse"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/repository/postgresql"
	scheduleService "github.com/shiftdesk/shiftdesk-backend-go/internal/service/schedule"
	worksessionService "github.com/shiftdesk/shiftdesk-backend-go/internal/service/worksession"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	sessionRepo := postgresql.NewWorkSessionRepository(db)
	presenceRepo := postgresql.NewPresenceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	sessionSvc := worksessionService.NewWorkSessionService(sessionRepo, presenceRepo, scheduleSvc, hub)

	sessionHandler := appHTTP.NewWorkSessionHandler(sessionSvc)
	presenceHandler := appHTTP.NewPresenceHandler(sessionSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, JWTService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			CORSOrigin: cfg.App.CORSOrigin,
			Env:        cfg.App.Env,
			LogLevel:   cfg.SlogLevel(),
		},
		JWTService,
		sessionHandler,
		presenceHandler,
		scheduleHandler,
		eventsHandler,
	)

	scheduler := cron.NewScheduler()
	sessionJobs := cron.NewWorkSessionJobs(sessionRepo, hub, db, cfg.Sweep.StaleThreshold)
	sessionJobs.RegisterJobs(scheduler, cfg.Sweep.Interval)
	scheduler.Start()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		scheduler.Stop()
		os.Exit(0)
	}()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
