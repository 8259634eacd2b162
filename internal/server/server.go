// Package server orchestrates a settings extension process: NATS client,
// dispatcher, HTTP health.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	comms "github.com/nats-io/nats.go"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/internal/config"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/commsutil"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/dispatcher"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/events"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/extension"
)

const logPrefix = "server:server"

// Server hosts one built settings extension over NATS request/reply.
type Server struct {
	cfg        *config.Config
	ext        *extension.SettingsExtension
	nc         *comms.Conn
	httpServer *http.Server
}

// Run starts the server for the given extension, blocks until a shutdown
// signal, then cleans up.
func Run(ext *extension.SettingsExtension) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info(fmt.Sprintf("%s - Starting settings extension '%s'", logPrefix, ext.Name()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Server{cfg: cfg, ext: ext}

	// Determine extension subject
	extensionSubject := cfg.ExtensionSubject
	if extensionSubject == "" {
		extensionSubject = commsutil.BuildExtensionSubject(ext.Name())
	}
	slog.Info(fmt.Sprintf("%s - Extension subject: %s", logPrefix, extensionSubject))

	// Connect to NATS
	nc, err := commsutil.Connect(cfg.COMMSURL, cfg.COMMSName)
	if err != nil {
		return fmt.Errorf("%s - failed to connect to NATS: %w", logPrefix, err)
	}
	s.nc = nc

	// Create change event publisher and dispatcher
	publisherOpts := &events.CommsPublisherOpts{}
	if cfg.ChangeEventSubject != "" {
		publisherOpts.GlobalChangeSubject = cfg.ChangeEventSubject
	}
	publisher := events.NewCommsPublisher(nc, publisherOpts)
	disp := dispatcher.NewDispatcher(ext, publisher)

	// Subscribe to the extension subject
	sub, err := nc.Subscribe(extensionSubject, extensionMsgHandler(ctx, disp, cfg.RequestTimeout))
	if err != nil {
		nc.Close()
		return fmt.Errorf("%s - failed to subscribe to %s: %w", logPrefix, extensionSubject, err)
	}
	slog.Info(fmt.Sprintf("%s - Subscribed to %s", logPrefix, extensionSubject))

	// Start HTTP health server
	mux := healthMux(ext, nc.IsConnected)

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	s.httpServer = &http.Server{Addr: httpAddr, Handler: mux}
	go func() {
		slog.Info(fmt.Sprintf("%s - HTTP health server listening on %s", logPrefix, httpAddr))
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s - HTTP server error: %v", logPrefix, err))
		}
	}()

	slog.Info(fmt.Sprintf("%s - Settings extension '%s' is ready", logPrefix, ext.Name()))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info(fmt.Sprintf("%s - Received signal %s, shutting down", logPrefix, sig))

	// Graceful shutdown
	sub.Unsubscribe()
	s.httpServer.Shutdown(ctx)
	nc.Drain()

	slog.Info(fmt.Sprintf("%s - Shutdown complete", logPrefix))
	return nil
}

// extensionMsgHandler returns the NATS message handler that decodes envelopes,
// applies per-request timeouts, dispatches, and responds.
func extensionMsgHandler(ctx context.Context, disp *dispatcher.Dispatcher, requestTimeout time.Duration) comms.MsgHandler {
	return func(msg *comms.Msg) {
		var req dispatcher.ExtensionRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			slog.Error(fmt.Sprintf("%s - failed to decode request: %v", logPrefix, err))
			resp := &dispatcher.ExtensionResponse{
				Ok: false,
				Error: &dispatcher.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "failed to decode request",
				},
			}
			data, _ := json.Marshal(resp)
			msg.Respond(data)
			return
		}

		// Per-request timeout; a tighter client timeout wins
		timeout := requestTimeout
		if req.Ctx != nil && req.Ctx.TimeoutMs > 0 {
			if d := time.Duration(req.Ctx.TimeoutMs) * time.Millisecond; d < timeout {
				timeout = d
			}
		}
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp := disp.Dispatch(reqCtx, &req)

		data, err := json.Marshal(resp)
		if err != nil {
			slog.Error(fmt.Sprintf("%s - failed to encode response: %v", logPrefix, err))
			return
		}
		msg.Respond(data)
	}
}

// healthMux builds the HTTP mux serving /health and /versions.
func healthMux(ext *extension.SettingsExtension, connected func() bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		if !connected() {
			status = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"extension": ext.Name(),
		})
	})
	mux.HandleFunc("/versions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"extension": ext.Name(),
			"versions":  ext.Versions(),
		})
	})
	return mux
}
