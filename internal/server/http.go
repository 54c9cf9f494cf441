package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ironsheep/cvbridge/internal/bridge"
	"github.com/ironsheep/cvbridge/internal/vision"
)

// shutdownTimeout bounds how long open connections may delay shutdown.
const shutdownTimeout = 5 * time.Second

// MethodInfo describes a callable method on the HTTP API.
type MethodInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HTTPApp builds the fiber application serving the HTTP API:
//
//	GET  /api/health        backend, version and matrix registry stats
//	GET  /api/methods       callable method names
//	POST /api/call/:method  JSON body holds the method arguments
func (s *Server) HTTPApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               Name,
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/methods", s.handleListMethods)
	api.Post("/call/:method", s.handleCall)

	return app
}

// ListenHTTP serves the HTTP API on addr until ctx is done or the listener
// fails. Cancellation shuts the app down gracefully and returns nil.
func (s *Server) ListenHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("http api listening")
	return s.serveHTTP(ctx, ln)
}

func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	app := s.HTTPApp()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("http api shutdown")
		}
		// Unblocks Listener if shutdown ran before it started serving
		_ = ln.Close()
	}()

	err := app.Listener(ln)
	if ctx.Err() != nil {
		<-stopped
		s.log.Info().Msg("http api stopped")
		return nil
	}
	return err
}

// handleHealth reports liveness plus registry usage
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.Version,
		"backend": vision.Backend,
		"mats":    s.bridge.Stats(),
	})
}

// handleListMethods returns callable methods
func (s *Server) handleListMethods(c *fiber.Ctx) error {
	tools := GetToolDefinitions()
	methods := make([]MethodInfo, len(tools))
	for i, t := range tools {
		methods[i] = MethodInfo{Name: t.Name, Description: t.Description}
	}
	return c.JSON(methods)
}

// handleCall runs one method. Rejections map to 4xx/5xx with the
// rejection's {code, message} as body.
func (s *Server) handleCall(c *fiber.Ctx) error {
	method := c.Params("method")

	result, err := s.Call(c.UserContext(), method, json.RawMessage(c.Body()))
	if err != nil {
		var rejection *bridge.Error
		switch {
		case errors.As(err, &rejection):
			return c.Status(rejectionStatus(rejection.Code)).JSON(rejection)
		case errors.Is(err, ErrUnknownTool):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"result": result})
}

func rejectionStatus(code string) int {
	switch code {
	case bridge.CodeInvalid:
		return fiber.StatusBadRequest
	case bridge.CodeNotFound:
		return fiber.StatusNotFound
	case bridge.CodeIsDirectory:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
