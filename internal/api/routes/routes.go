package routes

import (
	"net/http"
	"time"

	"livestock-supply-api-server/config"
	"livestock-supply-api-server/internal/api/handlers"
	"livestock-supply-api-server/internal/api/middleware"
	"livestock-supply-api-server/internal/inventory"
	"livestock-supply-api-server/internal/models"
	"livestock-supply-api-server/internal/s3"
	"livestock-supply-api-server/internal/socket"
	"livestock-supply-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires every handler and middleware into the gin engine.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	coordinator *inventory.Coordinator,
	reporter *inventory.Reporter,
	stocks inventory.StockStore,
	requestStore *store.RequestStore,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	tokenLifetime time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := &handlers.UserHandler{DB: db, TokenLifetime: tokenLifetime}
	medicineHandler := &handlers.MedicineHandler{DB: db}
	feedHandler := &handlers.FeedHandler{DB: db}
	livestockHandler := &handlers.LivestockHandler{DB: db}
	feedbackHandler := &handlers.FeedbackHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{Uploader: s3Uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}
	requestHandler := &handlers.RequestHandler{
		Coordinator: coordinator,
		Reporter:    reporter,
		Stocks:      stocks,
		Requests:    requestStore,
		Hub:         wsHub,
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		// Any signed-in user may browse the catalog and leave feedback.
		browse := apiV1.Group("/")
		browse.Use(middleware.Authenticate())
		{
			browse.GET("/medicines", medicineHandler.GetAllMedicines)
			browse.GET("/medicines/:id", medicineHandler.GetMedicineByID)
			browse.GET("/feeds", feedHandler.GetAllFeeds)
			browse.GET("/feeds/:id", feedHandler.GetFeedByID)

			browse.POST("/feedback", feedbackHandler.CreateFeedback)
			browse.GET("/feedback", feedbackHandler.GetAllFeedback)
			browse.GET("/feedback/my", feedbackHandler.GetMyFeedback)
			browse.DELETE("/feedback/:id", feedbackHandler.DeleteFeedback)

			browse.POST("/uploads/image", uploadHandler.UploadImage)
			browse.GET("/requests/:id", requestHandler.GetRequestByID)
		}

		// Owner routes: livestock records and request submission.
		owner := apiV1.Group("/")
		owner.Use(middleware.Authenticate())
		owner.Use(middleware.Authorize(models.RoleOwner))
		{
			livestock := owner.Group("/livestock")
			{
				livestock.POST("/", livestockHandler.CreateLivestock)
				livestock.GET("/my", livestockHandler.GetMyLivestock)
				livestock.GET("/:id", livestockHandler.GetLivestockByID)
				livestock.PUT("/:id", livestockHandler.UpdateLivestock)
				livestock.DELETE("/:id", livestockHandler.DeleteLivestock)
			}

			owner.POST("/requests", requestHandler.CreateRequest)
			owner.GET("/requests/my", requestHandler.GetMyRequests)
		}

		// Supplier routes: stock CRUD and request finalization.
		supplier := apiV1.Group("/")
		supplier.Use(middleware.Authenticate())
		supplier.Use(middleware.Authorize(models.RoleSupplier))
		{
			supplier.POST("/medicines", medicineHandler.CreateMedicine)
			supplier.GET("/medicines/my/list", medicineHandler.GetMyMedicines)
			supplier.PUT("/medicines/:id", medicineHandler.UpdateMedicine)
			supplier.DELETE("/medicines/:id", medicineHandler.DeleteMedicine)

			supplier.POST("/feeds", feedHandler.CreateFeed)
			supplier.GET("/feeds/my/list", feedHandler.GetMyFeeds)
			supplier.PUT("/feeds/:id", feedHandler.UpdateFeed)
			supplier.DELETE("/feeds/:id", feedHandler.DeleteFeed)

			supplier.GET("/requests/supplier", requestHandler.GetSupplierRequests)
			supplier.POST("/requests/:id/approve", requestHandler.ApproveRequest)
			supplier.POST("/requests/:id/reject", requestHandler.RejectRequest)
			supplier.GET("/requests/sold/:kind/:id", requestHandler.GetSoldSummary)
		}
	}

	return router
}
