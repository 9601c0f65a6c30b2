package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzhttp"

	"github.com/stevemurr/squirrel-server/handler"
	"github.com/stevemurr/squirrel-server/store"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type config struct {
	Addr    string
	Store   store.Config
	Origins []string
	LogDir  string
	Gzip    bool
}

func loadConfig() config {
	host := env("HOST", "0.0.0.0")
	port := env("PORT", "8080")
	c := config{
		Addr: fmt.Sprintf("%s:%s", host, port),
		Store: store.Config{
			Backend: env("STORE_BACKEND", "file"),
			Path:    os.Getenv("DB_PATH"),
			DataDir: env("DATA_DIR", "./data"),
			S3: store.S3Config{
				Endpoint: os.Getenv("S3_ENDPOINT"),
				Access:   os.Getenv("S3_ACCESS_KEY"),
				Secret:   os.Getenv("S3_SECRET_KEY"),
				Region:   os.Getenv("S3_REGION"),
				Bucket:   os.Getenv("S3_BUCKET"),
				Object:   env("S3_OBJECT", "squirrels.json"),
				Secure:   env("S3_SECURE", "1") == "1",
			},
		},
		LogDir: os.Getenv("LOG_DIR"),
		Gzip:   env("GZIP", "0") == "1",
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Origins = strings.Split(origins, ",")
	}
	return c
}

// corsMiddleware wraps an http.Handler with CORS headers.
// Preflight requests are answered here; without it they would 404.
func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	// Fast path: wildcard allows everything.
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			for _, o := range allowedOrigins {
				if strings.TrimSpace(o) == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					break
				}
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// buildHandler layers the middleware enabled by c around h.
func buildHandler(h http.Handler, c config, accessLog io.Writer) http.Handler {
	if len(c.Origins) > 0 {
		h = corsMiddleware(h, c.Origins)
	}
	if c.Gzip {
		h = gzhttp.GzipHandler(h)
	}
	return handler.LogRequests(h, accessLog)
}

func main() {
	c := loadConfig()

	s, err := store.Open(c.Store)
	if err != nil {
		log.Fatalf("failed to open store (backend=%s): %v", c.Store.Backend, err)
	}
	defer s.Close()

	items, err := s.List()
	if err != nil {
		log.Fatalf("failed to read store %s: %v", s.Location(), err)
	}

	var accessLog io.Writer
	if c.LogDir != "" {
		al, err := handler.NewAccessLog(c.LogDir)
		if err != nil {
			log.Fatalf("failed to open access log in %s: %v", c.LogDir, err)
		}
		defer al.Close()
		accessLog = al
		log.Printf("access log: %s", al.Path())
	}

	srv := &http.Server{
		Addr:         c.Addr,
		Handler:      buildHandler(handler.New(s), c, accessLog),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	chServerClosed := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		// mute error caused by Shutdown()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		chServerClosed <- err
	}()
	log.Printf("Squirrel Server starting on %s (store=%s, %s squirrels)", c.Addr, s.Location(), humanize.Comma(int64(len(items))))

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt /* SIGINT */, syscall.SIGTERM)
	select {
	case err := <-chServerClosed:
		if err != nil {
			log.Printf("server error: %v", err)
		}
		return
	case <-sig:
	}

	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
