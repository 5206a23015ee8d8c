// Command sellerctl drives the seller API from a terminal: sign up, sign in and manage the store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/config"
	"github.com/prperemyshlev/seller-portal/internal/portal"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"github.com/prperemyshlev/seller-portal/pkg/database"
	"github.com/prperemyshlev/seller-portal/pkg/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const redisSessionPrefix = "sellerctl:session"

// cli holds what every subcommand shares. It is filled in by the root PersistentPreRunE.
type cli struct {
	out    io.Writer
	errOut io.Writer
	json   bool

	cfg     *config.ClientConfig
	logger  *zap.Logger
	redis   *database.Redis
	session *session.Session
	client  *apiclient.Client
	portal  *portal.Portal
	closed  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, c := newRootCommand(os.Stdout, os.Stderr)
	if err := execute(ctx, root, c); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and then releases what setup opened. Cobra skips post-run hooks
// when a command fails, so the release happens here instead.
func execute(ctx context.Context, root *cobra.Command, c *cli) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func newRootCommand(out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "sellerctl",
		Short:         "Seller portal command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVar(&c.json, "json", false, "print JSON instead of tables")

	root.AddCommand(
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.categoriesCommand(),
		c.productsCommand(),
		c.ordersCommand(),
		c.dashboardCommand(),
	)
	return root, c
}

// setup loads .env and the environment, then wires the session store and the API client
func (c *cli) setup(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadClient(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger, err := observability.InitLogger(cfg.Env, level)
	if err != nil {
		return err
	}
	c.logger = logger

	store, err := c.sessionStore(ctx)
	if err != nil {
		return err
	}
	c.session = session.New(store, logger)

	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.API.Timeout.Duration),
		apiclient.WithLogger(logger),
		apiclient.WithNotifier(apiclient.NotifierFunc(func(_ context.Context, n apiclient.Notification) {
			fmt.Fprintf(c.errOut, "! %s\n", n.Message)
		})),
	}
	if cfg.BasicAuth.User != "" {
		opts = append(opts, apiclient.WithBasicAuth(cfg.BasicAuth.User, cfg.BasicAuth.Password))
	}

	client, err := apiclient.New(cfg.BaseURL(), c.session, opts...)
	if err != nil {
		return err
	}
	c.client = client
	c.portal = portal.New(client, c.session, logger)
	return nil
}

func (c *cli) sessionStore(ctx context.Context) (session.Store, error) {
	switch c.cfg.Session.Backend {
	case config.SessionMemory:
		return session.NewMemoryStore(), nil
	case config.SessionRedis:
		r := c.cfg.Session.Redis
		redis, err := database.NewRedis(ctx, r.Address(), r.Password, r.DB)
		if err != nil {
			return nil, err
		}
		c.redis = redis
		return session.NewRedisStore(redis, redisSessionPrefix, c.cfg.Session.TTL.Duration), nil
	default:
		path := c.cfg.Session.Path
		if path == "" {
			p, err := session.DefaultFilePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return session.NewFileStore(path), nil
	}
}

func (c *cli) close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	errs = append(errs, observability.SyncLogger(c.logger))
	return errors.Join(errs...)
}

// printError shows field errors under the summary when there are any
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	fields := map[string]string{}
	var regErr *registration.RegistrationError
	if errors.As(err, &regErr) {
		for f, msg := range regErr.FieldErrors {
			fields[string(f)] = msg
		}
	} else if apiErr, ok := apiclient.AsError(err); ok && apiErr.Kind == apiclient.KindValidation {
		fields = apiErr.FieldMessages()
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, fields[name])
	}
}
