package routes

import (
	"storageguard/auth"
	"storageguard/bidding"
	"storageguard/certs"
	"storageguard/dashboard"
	"storageguard/live"
	"storageguard/middleware"
	"storageguard/ratelim"
	"storageguard/telemetry"
	"storageguard/vendororders"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddBiddingRoutes(router *httprouter.Router, h *bidding.Handler) {
	router.GET("/api/v1/rfqs", ratelim.RateLimit(middleware.Authenticate(h.GetRFQs)))
	router.GET("/api/v1/rfqs/:id/bids", ratelim.RateLimit(middleware.Authenticate(h.GetRankedBids)))
	router.POST("/api/v1/rfqs/:id/accept", ratelim.RateLimit(middleware.Authenticate(h.AcceptBid)))
}

func AddTelemetryRoutes(router *httprouter.Router, h *telemetry.Handler) {
	router.GET("/api/v1/inventory", middleware.Authenticate(h.GetInventory))
}

func AddDashboardRoutes(router *httprouter.Router, h *dashboard.Handler) {
	router.GET("/api/v1/dashboard", middleware.Authenticate(h.GetSummary))
	router.GET("/api/v1/metrics", middleware.Authenticate(h.GetMetrics))
}

func AddCertRoutes(router *httprouter.Router, h *certs.Handler) {
	router.GET("/api/v1/verify-certificate", ratelim.RateLimit(h.VerifyCertificate))
	router.GET("/api/v1/certificates/:bookingid", ratelim.RateLimit(middleware.Authenticate(h.IssueCertificate)))
}

func AddVendorOrderRoutes(router *httprouter.Router) {
	router.GET("/api/v1/vendor/orders", middleware.Authenticate(vendororders.GetOrders))
	router.PUT("/api/v1/vendor/orders/:id/status", middleware.Authenticate(vendororders.UpdateOrderStatus))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/v1/live", hub.HandleWS)
}
