package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mini_casino/internal/config"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run Поднимает сессию и HTTP сервер, блокируется до отмены ctx
func (s *App) Run(ctx context.Context) error {
	envErr := config.Load(".env")
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	log := s.ServiceProvider.Logger()
	if envErr != nil {
		log.Warn("error loading .env file", zap.Error(envErr))
	}

	sess := s.ServiceProvider.SessionService(ctx)
	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.Close()

	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// сначала закрываем сессию, чтобы ждущие раскрытия запросы получили 503
	sess.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
