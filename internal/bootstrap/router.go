package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hearthplan/diy-backend/config"
	httpapi "github.com/hearthplan/diy-backend/internal/api/http"
	"github.com/hearthplan/diy-backend/internal/api/http/middleware"
	"github.com/hearthplan/diy-backend/internal/auth"

	generationhttp "github.com/hearthplan/diy-backend/internal/generation/http"
	generationllm "github.com/hearthplan/diy-backend/internal/generation/llm"
	generationrepo "github.com/hearthplan/diy-backend/internal/generation/repository"
	generation "github.com/hearthplan/diy-backend/internal/generation/service"

	instanceshttp "github.com/hearthplan/diy-backend/internal/instances/http"
	instancesrepo "github.com/hearthplan/diy-backend/internal/instances/repository"
	instancessvc "github.com/hearthplan/diy-backend/internal/instances/service"

	inventoryhttp "github.com/hearthplan/diy-backend/internal/inventory/http"
	inventoryrepo "github.com/hearthplan/diy-backend/internal/inventory/repository"

	templateshttp "github.com/hearthplan/diy-backend/internal/templates/http"
	templatesrepo "github.com/hearthplan/diy-backend/internal/templates/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(auth.WithUser())

	templateRepo := templatesrepo.NewTemplateRepository(dep.DB)
	instanceRepo := instancesrepo.NewInstanceRepository(dep.DB)
	inventoryRepo := inventoryrepo.NewInventoryRepository(dep.DB)

	templatesHandler := templateshttp.NewHandler(templateRepo, inventoryRepo)
	templatesHandler.Register(api.Group("/templates"))

	instanceService := instancessvc.NewInstanceService(instanceRepo, templateRepo)
	instancesHandler := instanceshttp.NewHandler(instanceService)
	instancesHandler.Register(api.Group("/instances"))

	inventoryHandler := inventoryhttp.NewHandler(inventoryRepo)
	inventoryHandler.Register(api.Group("/tools"))

	limiter := generation.NewRateLimiter(templateRepo, dep.Config.RateLimit.Window, dep.Config.RateLimit.MaxRequests)
	client := generationllm.NewClient(dep.Config.OpenAI)
	persister := generation.NewPersister(templateRepo, instanceRepo, inventoryRepo)
	previews := generationrepo.NewPreviewRepository(dep.Redis)
	genService := generation.NewService(limiter, client, persister, previews, generation.NewStdLogger())

	generationHandler := generationhttp.NewHandler(genService)
	generationHandler.Register(api.Group("/generate"))

	return r
}
