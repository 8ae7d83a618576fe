package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/kanadeck-api/auth"
	"github.com/andrewpaige1/kanadeck-api/config"
	"github.com/andrewpaige1/kanadeck-api/handlers"
	"github.com/andrewpaige1/kanadeck-api/middleware"
	"github.com/andrewpaige1/kanadeck-api/session"
	"github.com/andrewpaige1/kanadeck-api/storage"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "kanadeck",
		Short:        "Kana flashcard decks: API server and terminal review",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reviewCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the deck API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Load()

			db, err := config.Connect(env)
			if err != nil {
				return err
			}

			authMiddleware, err := middleware.EnsureValidToken(env)
			if err != nil {
				return err
			}

			sessions := session.NewManager(func(userID uint) storage.Store {
				return storage.NewGormStore(db, userID)
			})
			DBHandler := &handlers.DBHandler{DB: db, Sessions: sessions}

			// Configure CORS with specific options
			corsHandler := cors.New(cors.Options{
				AllowedOrigins:   env.AllowedOrigins,
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
				AllowCredentials: true,
				MaxAge:           86400,
			}).Handler(authMiddleware(DBHandler.Routes()))

			serverAddr := "0.0.0.0:" + env.Port
			log.Printf("kanadeck API listening on %s", serverAddr)
			return http.ListenAndServe(serverAddr, corsHandler)
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		subject  string
		nickname string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed API token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.CreateToken(config.Load(), subject, nickname, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "local|dev", "token subject")
	cmd.Flags().StringVar(&nickname, "nickname", "", "nickname claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
