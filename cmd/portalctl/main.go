// portalctl is a small operator console for the assessment portal. It keeps
// one persistent session: login stores the session record, every later
// invocation rehydrates it, and logout clears it.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/service"
	mongodb "github.com/gemlab/assessment-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/gemlab/assessment-portal/internal/infrastructure/db/redis"
	"github.com/gemlab/assessment-portal/internal/pkg/config"
	"github.com/gemlab/assessment-portal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Operator console for the assessment portal",
		Long: `portalctl talks directly to the portal's backing stores. It holds a
single persistent session: "portalctl login" stores the session record,
subsequent commands pick it up again, and "portalctl logout" clears it.`,
		SilenceUsage: true,
	}

	root.AddCommand(loginCmd(), logoutCmd(), whoamiCmd(), canCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// console bundles the rehydrated session store and its connections.
type console struct {
	store *service.SessionStore
	guard *service.RouteGuard
	close func()
}

// connect dials Mongo and Redis, then rehydrates the session store from the
// persisted record.
func connect(ctx context.Context) (*console, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: "warn"})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("redis: %w", err)
	}

	auth := service.NewAuthService(mongodb.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	persist := redisdb.NewSessionPersistence(rdb)
	store := service.NewSessionStore(ctx, auth, persist, log)

	return &console{
		store: store,
		guard: service.NewRouteGuard(domain.LoginPath, domain.DefaultLandingPath),
		close: func() {
			_ = rdb.Close()
			_ = mongoClient.Disconnect(context.Background())
		},
	}, nil
}

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			fmt.Fprint(os.Stderr, "Password: ")
			password, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			con, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer con.close()

			if err := con.store.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			sess := con.store.Current()
			fmt.Printf("Logged in as %s (%s)\n", sess.User.Email, sess.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer con.close()

			// Logging out twice lands in the same place.
			con.store.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer con.close()

			sess := con.store.Current()
			if !sess.IsAuthenticated {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s (%s)\n", sess.User.Email, sess.User.Role)
			return nil
		},
	}
}

func canCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "can <path>",
		Short: "Evaluate route access for the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer con.close()

			result := con.guard.EvaluateRoute(con.store.Current(), domain.DashboardRoutes, args[0])
			if result.RedirectTo != "" {
				fmt.Printf("%s -> %s\n", result.Decision, result.RedirectTo)
			} else {
				fmt.Println(result.Decision)
			}
			return nil
		},
	}
}
