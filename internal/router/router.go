package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/handler"
	"github.com/noah-isme/univ-api/internal/middleware"
	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/config"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/univ-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/univ-api/pkg/middleware/requestid"
	"github.com/noah-isme/univ-api/pkg/ratelimit"
	"github.com/noah-isme/univ-api/pkg/response"
)

// Options carries the cross-cutting collaborators of the router.
type Options struct {
	Env            string
	APIPrefix      string
	AllowedOrigins []string
	Logger         *zap.Logger
	Tokens         middleware.TokenValidator
	Audit          middleware.AuditRecorder
	Metrics        *service.MetricsService
	// Limiter throttles the public auth routes. Nil disables throttling.
	Limiter ratelimit.Limiter
}

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Universities *handler.UniversityHandler
	Colleges     *handler.CollegeHandler
	Departments  *handler.DepartmentHandler
	Programs     *handler.ProgramHandler
	Courses      *handler.CourseHandler
	AdminUnits   *handler.AdminUnitHandler
	Deanships    *handler.DeanshipHandler
	Ops          *handler.MetricsHandler
}

type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

var managers = []models.UserRole{models.RoleAdmin, models.RoleFaculty}

// New builds the gin engine with every route mounted.
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Can't find "+c.Request.URL.Path+" on this server"))
	})

	r.GET("/health", h.Ops.Health)
	r.GET("/ready", h.Ops.Ready)
	r.GET("/metrics", h.Ops.Prometheus)
	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	authenticated := middleware.JWT(opts.Tokens)
	throttled := middleware.RateLimit(opts.Limiter, opts.Metrics, opts.Logger)

	auth := api.Group("/auth")
	auth.POST("/signup", throttled, h.Auth.Signup)
	auth.POST("/login", throttled, h.Auth.Login)
	auth.POST("/refresh-token", throttled, h.Auth.Refresh)
	auth.GET("/verify/:token", h.Auth.VerifyEmail)
	auth.POST("/resend-verification", throttled, h.Auth.ResendVerification)
	auth.POST("/forgot-password", throttled, h.Auth.ForgotPassword)
	auth.PATCH("/reset-password/:token", throttled, h.Auth.ResetPassword)

	session := auth.Group("", authenticated)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/profile", h.Auth.Profile)
	session.PATCH("/change-password", h.Auth.ChangePassword)
	session.GET("/profile/avatar", h.Auth.AvatarLink)
	session.POST("/profile/avatar", h.Auth.UploadAvatar)

	api.GET("/files/:token", h.Auth.Download)

	users := api.Group("/users", authenticated)
	users.GET("", middleware.RequireRoles(models.RoleAdmin), h.Users.List)
	users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), h.Users.Get)
	userWrites := users.Group("", middleware.RBAC(string(models.RoleAdmin), "SELF"), middleware.Audit(opts.Audit, "users", opts.Logger))
	userWrites.PUT("/:id", h.Users.Update)
	userWrites.PATCH("/:id", h.Users.Update)
	userWrites.DELETE("/:id", h.Users.Delete)

	mount(api, "/universities", h.Universities, authenticated, opts)
	mount(api, "/colleges", h.Colleges, authenticated, opts)
	departments := mount(api, "/departments", h.Departments, authenticated, opts)
	departments.GET("/colleges/:collegeId", h.Departments.ListByCollege)
	programs := mount(api, "/programs", h.Programs, authenticated, opts)
	programs.GET("/departments/:departmentId", h.Programs.ListByDepartment)
	courses := mount(api, "/courses", h.Courses, authenticated, opts)
	courses.GET("/programs/:programId", h.Courses.ListByProgram)
	mount(api, "/admin-units", h.AdminUnits, authenticated, opts)
	mount(api, "/deanships", h.Deanships, authenticated, opts)

	return r
}

// mount registers public reads and role-restricted, audited writes for one resource.
func mount(api *gin.RouterGroup, path string, h crudHandler, authenticated gin.HandlerFunc, opts Options) *gin.RouterGroup {
	group := api.Group(path)
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	writes := group.Group("", authenticated, middleware.RequireRoles(managers...), middleware.Audit(opts.Audit, path[1:], opts.Logger))
	writes.POST("", h.Create)
	writes.PUT("/:id", h.Update)
	writes.PATCH("/:id", h.Update)
	writes.DELETE("/:id", h.Delete)
	return group
}
