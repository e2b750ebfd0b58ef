package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storageguard/bidding"
	"storageguard/certs"
	"storageguard/dashboard"
	"storageguard/gateway"
	"storageguard/live"
	"storageguard/poller"
	"storageguard/routes"
	"storageguard/telemetry"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(gw *gateway.Client, store *telemetry.Store, cache *dashboard.Cache, hub *live.Hub, polledFarmer string) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router)
	routes.AddBiddingRoutes(router, bidding.NewHandler(gw))
	routes.AddTelemetryRoutes(router, telemetry.NewHandler(store))
	routes.AddDashboardRoutes(router, dashboard.NewHandler(cache, gw, polledFarmer))
	routes.AddCertRoutes(router, certs.NewHandler(store))
	routes.AddVendorOrderRoutes(router)
	routes.AddLiveRoutes(router, hub)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	apiBase := os.Getenv("STORAGE_API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8000"
	}

	// The poller keeps one farmer account warm, mirroring the dashboard
	// session it replaces. Other farmers are served from snapshots or
	// live gateway fetches.
	polledFarmer := os.Getenv("FARMER_ID")
	if polledFarmer == "" {
		polledFarmer = "demo-farmer"
	}

	gw := gateway.NewClient(apiBase)
	store := telemetry.NewStore()
	cache := dashboard.NewCache()

	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := live.NewHub()
	go hub.Run(hubCtx)

	p := poller.New(gw, store, cache, polledFarmer)
	p.Start()

	archiver := dashboard.StartArchiver(cache, polledFarmer)

	router := setupRouter(gw, store, cache, hub, polledFarmer)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Stopping poller and live hub...")
		p.Stop()
		hubCancel()
		archiver.Stop()
	})

	go func() {
		log.Printf("StorageGuard listening on %s (upstream %s)", port, apiBase)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
