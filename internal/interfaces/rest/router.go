package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig carries the router-level toggles.
type RouterConfig struct {
	EnableCORS bool
}

// NewRouter assembles the API router.
func NewRouter(
	catalogHandler *CatalogHandler,
	communityHandler *CommunityHandler,
	mediaHandler *MediaHandler,
	cfg RouterConfig,
	logger *zap.Logger,
) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", healthCheck)

	router.Route("/api", func(r chi.Router) {
		// videos
		r.Get("/video/{videoID}", catalogHandler.GetVideo)
		r.Post("/videos", catalogHandler.ListVideos)
		r.Post("/video", catalogHandler.CreateVideo)
		r.Put("/video", catalogHandler.UpdateVideo)

		// tags
		r.Get("/tag/{tagID}", catalogHandler.GetTag)
		r.Get("/tags", catalogHandler.ListTags)
		r.Post("/tag", catalogHandler.CreateTag)
		r.Put("/tag", catalogHandler.UpdateTag)
		r.Delete("/tag", catalogHandler.DeleteTag)

		// categories
		r.Get("/categories", catalogHandler.ListCategories)
		r.Post("/category", catalogHandler.CreateCategory)
		r.Put("/category", catalogHandler.UpdateCategory)
		r.Delete("/category/{categoryID}", catalogHandler.DeleteCategory)

		// learning paths
		r.Get("/path/{pathID}", catalogHandler.GetLearningPath)
		r.Get("/paths", catalogHandler.ListLearningPaths)
		r.Post("/path", catalogHandler.CreateLearningPath)
		r.Put("/path", catalogHandler.UpdateLearningPath)
		r.Delete("/path", catalogHandler.DeleteLearningPath)

		// playback orders
		r.Get("/orders/{pathID}", catalogHandler.ListOrders)
		r.Post("/order", catalogHandler.GetOrder)

		// users
		r.Get("/user/{userID}", catalogHandler.GetUser)
		r.Get("/users", catalogHandler.ListUsers)
		r.Get("/users/logins/today", catalogHandler.LoginCount)
		r.Post("/user", catalogHandler.UpsertUser)
		r.Put("/user", catalogHandler.UpdateUser)

		// threads, likes, favorites, histories
		r.Get("/threads/{videoID}", communityHandler.ListThreads)
		r.Post("/thread", communityHandler.CreateThread)
		r.Put("/thread", communityHandler.UpdateThread)
		r.Get("/likes/{videoID}", communityHandler.ListLikes)
		r.Post("/like", communityHandler.CreateLike)
		r.Delete("/like", communityHandler.DeleteLike)
		r.Get("/favorites/{userID}", communityHandler.ListFavorites)
		r.Post("/favorite", communityHandler.AddFavorite)
		r.Delete("/favorite", communityHandler.RemoveFavorite)
		r.Get("/histories/today", communityHandler.ListHistoriesToday)
		r.Get("/histories/{userID}", communityHandler.ListHistories)
		r.Post("/history", communityHandler.CreateHistory)

		// platform
		r.Get("/vimeo/video/{videoID}", mediaHandler.GetPlatformVideo)
		r.Get("/vimeo/videos/total", mediaHandler.GetPlatformTotal)
		r.Post("/vimeo/videos", mediaHandler.ListMergedVideos)
		r.Put("/vimeo/video", mediaHandler.UpdatePlatformVideo)
		r.Get("/admin/videos/table", mediaHandler.GetVideoTable)

		// uploads
		r.Post("/upload", mediaHandler.StartUpload)
		r.Get("/upload/status", mediaHandler.ListUploadStatuses)
		r.Post("/upload/status", mediaHandler.CreateUploadStatus)
		r.Put("/upload/status", mediaHandler.UpdateUploadStatus)
		r.Get("/upload/transcode/{videoID}", mediaHandler.GetTranscodeStatus)
		r.Post("/upload/thumbnail/{videoID}", mediaHandler.UploadThumbnail)

		// banners
		r.Get("/banners", mediaHandler.ListBanners)
		r.Post("/banner", mediaHandler.CreateBanner)
		r.Put("/banner", mediaHandler.UpdateBanner)
		r.Post("/banner/image", mediaHandler.UploadBannerImage)
	})

	return router
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
