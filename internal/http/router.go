package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	userRepo := repositories.UserRepository{DB: db}
	productRepo := repositories.ProductRepository{DB: db}

	authSvc := services.AuthService{Users: userRepo, Secret: []byte(env.JWTSecret)}
	productSvc := services.ProductService{Products: productRepo}
	docsSvc := services.DocsService{Products: productRepo}

	authHandler := h.AuthHandler{Auth: authSvc, CookieSecure: env.Production}
	productHandler := h.ProductHandler{Products: productSvc, Docs: docsSvc}
	uploadHandler := h.UploadHandler{Dir: env.UploadDir}
	systemHandler := h.SystemHandler{DB: db}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.ClientURL))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// Uploaded product images are served statically.
	r.Static("/uploads", env.UploadDir)

	api := r.Group("/api")
	api.Use(middleware.ResolveUser(authSvc))
	{
		api.GET("/health", systemHandler.Health)
		api.GET("/db-check", systemHandler.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.RequireUser(), authHandler.Logout)
		auth.GET("/me", middleware.RequireUser(), authHandler.Me)

		products := api.Group("/products")
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Detail)
		products.GET("/:id/sheet", productHandler.Sheet)
		products.POST("", middleware.RequireUser(), productHandler.Create)
		products.POST("/image", middleware.RequireUser(), uploadHandler.UploadImage)
	}

	return r
}
