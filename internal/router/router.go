package router

import (
	"net/http"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/config"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/handler"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/middleware"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/store"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and the full route table.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	// last-resort fallback: a panic anywhere still yields a well-formed body
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
	}))
	r.Use(middleware.CORS())
	if cfg.Log.Responses {
		r.Use(middleware.ResponseLog())
	}

	users := store.NewUserStore(db)
	transactions := store.NewTransactionStore(db)

	authHandler := handler.NewAuthHandler(users, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	profileHandler := handler.NewProfileHandler(users)
	transactionHandler := handler.NewTransactionHandler(transactions)
	exportHandler := handler.NewExportHandler(transactions)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		util.Success(c, http.StatusOK, util.Response{"message": "ok"})
	})

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWT.Secret))

	protected.POST("/auth/change-password", authHandler.ChangePassword)

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	// dashboard is registered before /:id so gin does not treat it as an id
	protected.GET("/transactions/dashboard", transactionHandler.Dashboard)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
