package main

import (
	"net/http"

	"spotfinder/docs"
	"spotfinder/internal/config"
	"spotfinder/internal/handler"
	"spotfinder/internal/repository"
	"spotfinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func newRouter(cfg config.Config, repo *repository.Repository) *gin.Engine {
	// Initialize layers
	locationService := service.NewLocationService(repo)
	locationHandler := handler.NewLocationHandler(locationService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if err := repo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "database unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/locations", locationHandler.Find)
	r.POST("/locations", locationHandler.Add)
	r.PUT("/locations", locationHandler.Update)
	r.DELETE("/locations", locationHandler.Delete)
	r.GET("/suggestions", locationHandler.Suggest)

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	docs.SwaggerInfo.Host = cfg.ServerAddress
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
