package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-desk.com/task-desk/internal/client"
	config "task-desk.com/task-desk/internal/configs"
	"task-desk.com/task-desk/internal/http/validators"
	"task-desk.com/task-desk/internal/session"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var errSignedOut = errors.New("not signed in, run `task-desk login` first")

// cli bundles what every command line subcommand needs.
type cli struct {
	cfg   config.Config
	log   *logrus.Logger
	api   *client.Client
	store *session.FileStore
}

func newCLI() (*cli, error) {
	cfg, log, err := bootstrap()
	if err != nil {
		return nil, err
	}

	path := cfg.SessionFile
	if path == "" {
		if path, err = session.DefaultFilePath(); err != nil {
			return nil, fmt.Errorf("locating session file: %w", err)
		}
	}

	return &cli{
		cfg:   cfg,
		log:   log,
		api:   newAPIClient(cfg, log),
		store: session.NewFileStore(path),
	}, nil
}

// session returns the saved session, or errSignedOut.
func (c *cli) session() (*session.Session, error) {
	sess, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, errSignedOut
	}
	return sess, nil
}

// signedOut drops a session the task store no longer accepts.
func (c *cli) signedOut(sess *session.Session, err error) error {
	if !errors.Is(err, exceptions.ErrAuth) {
		return err
	}
	if clearErr := c.store.Clear(sess); clearErr != nil {
		c.log.WithError(clearErr).Warn("failed to clear session file")
	}
	return fmt.Errorf("%w (session ended, run `task-desk login`)", err)
}

func (c *cli) signIn(res *model.AuthResponse) (*model.User, error) {
	sess := &session.Session{}
	user := res.User()
	sess.Init(res.Token, user, c.cfg.SessionTTL())
	if err := c.store.Save(sess); err != nil {
		return nil, err
	}
	return user, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the task API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		req := model.LoginRequest{Email: email, Password: password}
		if err := validators.ValidateLoginRequest(&req); err != nil {
			return err
		}

		res, err := c.api.Login(cmd.Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		user, err := c.signIn(res)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.DisplayName())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		req := model.RegisterRequest{Username: username, Email: email, Password: password}
		if err := validators.ValidateRegisterRequest(&req); err != nil {
			return err
		}

		res, err := c.api.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		user, err := c.signIn(res)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", user.DisplayName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}

		sess, err := c.store.Load()
		if err != nil {
			return err
		}
		if err := c.store.Clear(sess); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}
		sess, err := c.session()
		if err != nil {
			return err
		}

		user, err := c.api.Profile(sess.Context(cmd.Context()))
		if err != nil {
			return c.signedOut(sess, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName(), user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("username", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (at least 6 characters)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

