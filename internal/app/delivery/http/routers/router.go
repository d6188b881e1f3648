package routers

import (
	"fmt"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/delivery/http/controllers"
	"mrchemist-admin-service/internal/app/delivery/http/middlewares"
	"mrchemist-admin-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	consultationController *controllers.ConsultationController,
	productController *controllers.ProductController,
	blogController *controllers.BlogController,
	treatmentController *controllers.TreatmentController,
	customerController *controllers.CustomerController,
	userController *controllers.UserController,
	resourceController *controllers.ResourceController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.AllowedOrigins),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodPatch, constvars.MethodDelete, "OPTIONS"},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.Authenticate)

			attachConsultationRoutes(r, consultationController)
			attachProductRoutes(r, productController)
			attachBlogRoutes(r, blogController)
			attachTreatmentRoutes(r, treatmentController)
			attachCustomerRoutes(r, customerController)
			attachUserRoutes(r, userController)
			attachResourceRoutes(r, resourceController)
		})
	})
}

func allowedOrigins(value string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
