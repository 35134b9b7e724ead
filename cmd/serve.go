package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/bunx"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/server"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the task API server",
	Long:  `Starts the HTTP server with the REST API and health endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		userRepo := repository.NewBunUserRepository(db)
		listRepo := repository.NewBunTodoListRepository(db)
		taskRepo := repository.NewBunTaskRepository(db)
		statusRepo := repository.NewBunTaskStatusRepository(db)

		tokens, err := auth.NewTokenService(cfg.JWTSecret,
			auth.WithAccessTTL(cfg.AccessTokenTTL),
			auth.WithRefreshTTL(cfg.RefreshTokenTTL),
		)
		if err != nil {
			return fmt.Errorf("configure token service: %w", err)
		}

		authService := iam.NewAuthService(userRepo, tokens)
		resolver := iam.NewOwnershipResolver(userRepo, listRepo, taskRepo)
		policyService := iam.NewPolicyService(tokens, resolver)

		handler := server.NewH2CHandler(server.RouterOptions{
			Auth:       authService,
			Policy:     policyService,
			Tokens:     tokens,
			Users:      userRepo,
			Lists:      listRepo,
			Tasks:      taskRepo,
			Statuses:   statusRepo,
			BcryptCost: cfg.BcryptCost,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
