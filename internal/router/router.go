package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gnkhotels/go-hotel-curation/app/logger"
	"github.com/gnkhotels/go-hotel-curation/internal/api/articles"
	"github.com/gnkhotels/go-hotel-curation/internal/api/auth"
	"github.com/gnkhotels/go-hotel-curation/internal/api/groups"
	"github.com/gnkhotels/go-hotel-curation/internal/api/hotels"
	"github.com/gnkhotels/go-hotel-curation/internal/api/media"
	"github.com/gnkhotels/go-hotel-curation/internal/api/pricetags"
	"github.com/gnkhotels/go-hotel-curation/internal/api/restaurants"
	"github.com/gnkhotels/go-hotel-curation/internal/api/searchterms"
	"github.com/gnkhotels/go-hotel-curation/internal/api/seo"
	"github.com/gnkhotels/go-hotel-curation/internal/api/suggest"
	"github.com/gnkhotels/go-hotel-curation/internal/api/tags"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Hotels      *hotels.Handler
	Groups      *groups.Handler
	Tags        *tags.Handler
	PriceTags   *pricetags.Handler
	SearchTerms *searchterms.Handler
	Articles    *articles.Handler
	Restaurants *restaurants.Handler
	Suggest     *suggest.Handler
	Media       *media.Handler
	Seo         *seo.Handler
	Auth        *auth.Handler
	AuthService auth.Service
}

// New assembles the HTTP surface: the public read API, the SEO
// endpoints, and the token-guarded admin CRUD under /api/v1/admin.
func New(h Handlers, timeout time.Duration, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.StructuredLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/sitemap.xml", h.Seo.Sitemap)
	r.Get("/robots.txt", h.Seo.Robots)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/hotels", h.Hotels.List)
		r.Get("/hotels/search", h.Hotels.Search)
		r.Get("/hotels/tag/{slug}", h.Hotels.ByTag)
		r.Get("/hotels/price/{slug}", h.Hotels.ByPrice)
		r.Get("/hotels/{hotelID}", h.Hotels.Get)

		r.Get("/groups/published", h.Groups.Published)

		r.Get("/tags", h.Tags.List)
		r.Get("/tags/featured", h.Tags.Featured)
		r.Get("/tags/{slug}", h.Tags.GetBySlug)

		r.Get("/price-tags", h.PriceTags.List)
		r.Get("/search-terms", h.SearchTerms.List)

		r.Get("/articles", h.Articles.List)
		r.Get("/articles/latest", h.Articles.Latest)
		r.Get("/articles/{slug}", h.Articles.GetBySlug)

		r.Get("/restaurants", h.Restaurants.ByLocation)

		r.Get("/suggest", h.Suggest.Suggest)
		r.Get("/suggest/resolve", h.Suggest.Resolve)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Authenticate(h.AuthService))

			r.Post("/hotels", h.Hotels.Create)
			r.Put("/hotels/{hotelID}", h.Hotels.Update)
			r.Delete("/hotels/{hotelID}", h.Hotels.Delete)
			r.Delete("/hotels/{hotelID}/purge", h.Hotels.HardDelete)
			r.Post("/hotels/{hotelID}/restore", h.Hotels.Restore)

			r.Get("/groups", h.Groups.List)
			r.Get("/groups/{groupID}", h.Groups.Get)
			r.Post("/groups", h.Groups.Create)
			r.Put("/groups/{groupID}", h.Groups.Update)
			r.Put("/groups/{groupID}/hotels", h.Groups.SetHotels)
			r.Delete("/groups/{groupID}", h.Groups.Delete)
			r.Delete("/groups/{groupID}/purge", h.Groups.HardDelete)
			r.Post("/groups/{groupID}/restore", h.Groups.Restore)

			r.Post("/tags", h.Tags.Create)
			r.Put("/tags/{tagID}", h.Tags.Update)
			r.Delete("/tags/{tagID}", h.Tags.Delete)
			r.Delete("/tags/{tagID}/purge", h.Tags.HardDelete)
			r.Post("/tags/{tagID}/restore", h.Tags.Restore)

			r.Post("/price-tags", h.PriceTags.Create)
			r.Get("/price-tags/{priceTagID}", h.PriceTags.Get)
			r.Put("/price-tags/{priceTagID}", h.PriceTags.Update)
			r.Delete("/price-tags/{priceTagID}", h.PriceTags.Delete)
			r.Delete("/price-tags/{priceTagID}/purge", h.PriceTags.HardDelete)
			r.Post("/price-tags/{priceTagID}/restore", h.PriceTags.Restore)

			r.Post("/search-terms", h.SearchTerms.Create)
			r.Put("/search-terms/{termID}", h.SearchTerms.Update)
			r.Delete("/search-terms/{termID}", h.SearchTerms.Delete)
			r.Delete("/search-terms/{termID}/purge", h.SearchTerms.HardDelete)
			r.Post("/search-terms/{termID}/restore", h.SearchTerms.Restore)

			r.Post("/articles", h.Articles.Create)
			r.Put("/articles/{articleID}", h.Articles.Update)
			r.Delete("/articles/{articleID}", h.Articles.Delete)
			r.Delete("/articles/{articleID}/purge", h.Articles.HardDelete)
			r.Post("/articles/{articleID}/restore", h.Articles.Restore)

			r.Get("/restaurant-categories", h.Restaurants.ListCategories)
			r.Post("/restaurant-categories", h.Restaurants.CreateCategory)
			r.Delete("/restaurant-categories/{categoryID}", h.Restaurants.DeleteCategory)
			r.Post("/restaurants", h.Restaurants.CreateRestaurant)
			r.Delete("/restaurants/{restaurantID}", h.Restaurants.DeleteRestaurant)
			r.Post("/restaurant-notes", h.Restaurants.CreateNote)
			r.Delete("/restaurant-notes/{noteID}", h.Restaurants.DeleteNote)

			r.Post("/media/images", h.Media.UploadImage)
			r.Delete("/media/images", h.Media.DeleteImage)
			r.Post("/media/videos", h.Media.UploadVideo)
			r.Delete("/media/videos", h.Media.DeleteVideo)

			r.Post("/suggest/refresh", h.Suggest.Refresh)

			r.Post("/users", h.Auth.Register)
		})
	})

	return r
}
