package routes

import (
	"net/http"

	"github.com/claimdesk/claimdesk/internal/app"
	"github.com/claimdesk/claimdesk/internal/handler"
	"github.com/claimdesk/claimdesk/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	claim := handler.NewClaimHandler(app.ClaimService)
	media := handler.NewMediaHandler(app.ClaimService)
	damage := handler.NewDamageHandler(app.DamageService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)

	// Claims
	mux.HandleFunc("POST /claims", claim.Create)
	mux.HandleFunc("GET /claims", claim.List)
	mux.HandleFunc("GET /claims/{id}", claim.Show)
	mux.HandleFunc("PUT /claims/{id}", claim.Update)
	mux.HandleFunc("POST /claims/{id}/media", claim.AddMedia)
	mux.HandleFunc("GET /claims/{id}/media", claim.ClaimMedia)

	// Media
	mux.HandleFunc("GET /media", media.List)
	mux.HandleFunc("GET /media/{id}", media.Show)
	mux.HandleFunc("GET /media/{id}/download", media.Download)
	mux.HandleFunc("PATCH /media/{id}", media.UpdateDescription)
	mux.HandleFunc("DELETE /media/{id}", media.Delete)

	// Damage analysis
	mux.HandleFunc("POST /claims/{id}/analyze", damage.AnalyzeClaim)
	mux.HandleFunc("POST /analyze", damage.Analyze)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.RequestLogging,
		middleware.RateLimitMutations(app.Cfg.RateLimit, app.Cfg.RateLimitWindow),
		middleware.BearerAuth(app.Cfg.JWTSecret),
	)
}
