package routes

import (
	"context"
	"log"
	"strconv"

	_ "prefacturation_service/docs" // This will be auto-generated
	"prefacturation_service/internal/adapter/http/dto/request"
	"prefacturation_service/internal/adapter/http/handlers"
	"prefacturation_service/internal/bootstrap"
	"prefacturation_service/internal/infrastructure/config"
	"prefacturation_service/internal/infrastructure/metrics"
	"prefacturation_service/internal/infrastructure/realtime"
	"prefacturation_service/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

// Run will start the server
func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer deps.Close()

	if err := request.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	m := metrics.NewMetrics()
	hub := realtime.NewHub(cfg.CORSAllowedOrigins)
	go hub.Run(ctx)

	setMiddlewares(router, cfg.CORSAllowedOrigins, m)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	getRoutes(router, cfg, deps, hub, m)

	err = router.Run(":" + strconv.Itoa(cfg.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(r *gin.Engine, cfg *config.Config, deps *bootstrap.Dependencies, hub *realtime.Hub, m *metrics.Metrics) {
	machine := cfg.StateMachine()

	prefacturationUseCase := usecase.NewPrefacturationUseCase(deps.Repository, deps.Locker, deps.Facts, hub, m, machine)
	resolutionUseCase := usecase.NewResolutionUseCase(deps.Repository, deps.Locker, hub, m, machine)

	prefacturationHandler := handlers.NewPrefacturationHandler(prefacturationUseCase)
	resolutionHandler := handlers.NewResolutionHandler(resolutionUseCase)

	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addPrefacturationRoutes(v1, prefacturationHandler, resolutionHandler)
	addRealtimeRoutes(v1, hub.ServeWs)
}
