package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/client/config"
	"github.com/dmitrijs2005/mypage/internal/client/login"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/client/repositories"
	"github.com/dmitrijs2005/mypage/internal/client/services"
	"github.com/dmitrijs2005/mypage/internal/client/store"
	"github.com/dmitrijs2005/mypage/internal/logging"
)

// Session is what the App needs from the session store.
type Session interface {
	login.SessionWriter
	State() models.Session
	Subscribe(fn func(models.Session)) (unsubscribe func())
}

// Ledger is what the App needs from the recent-accounts ledger.
type Ledger interface {
	login.AccountRecorder
	List() []models.RecentAccount
	Remove(ctx context.Context, email string) error
}

type App struct {
	config  *config.Config
	log     logging.Logger
	closer  io.Closer
	auth    login.Authenticator
	session Session
	ledger  Ledger
	portal  services.PortalService
	reader  *bufio.Reader
	out     io.Writer

	// resetDevice wipes every stored record for this device.
	resetDevice func(ctx context.Context) error

	mu          sync.Mutex
	displayName string
	location    string
	unsubscribe func()
}

// NewApp opens the configured store, rehydrates the session and the recent
// accounts, and builds the API client on top of them.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := repositories.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	session := store.NewSessionStore(ctx, st, log)

	var seed []string
	if !c.IsProduction() {
		seed = store.DemoAccounts
	}
	ledger := store.NewRecentAccounts(ctx, st, store.RecentAccountsOptions{
		Max:      c.MaxRecentAccounts,
		FoldCase: c.RecentAccountsFoldCase,
		Seed:     seed,
	}, log)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: c.HTTPTimeout}),
		client.WithTokenSource(session.AccessToken),
		client.WithLogger(log),
	)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a := newApp(api, session, ledger, services.NewPortalService(api, session, log), log,
		bufio.NewReader(os.Stdin), os.Stdout)
	a.config = c
	a.closer = st
	a.resetDevice = func(ctx context.Context) error {
		return store.ResetDevice(ctx, st, session, ledger)
	}
	return a, nil
}

func newApp(auth login.Authenticator, session Session, ledger Ledger, portal services.PortalService,
	log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		log:     log,
		auth:    auth,
		session: session,
		ledger:  ledger,
		portal:  portal,
		reader:  reader,
		out:     out,
	}
	a.onSessionChange(session.State())
	a.unsubscribe = session.Subscribe(a.onSessionChange)
	return a
}

func (a *App) onSessionChange(s models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s.IsAuthenticated && s.User != nil {
		a.displayName = s.User.DisplayName
	} else {
		a.displayName = ""
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.displayName == "" {
		return "(未ログイン)"
	}
	return fmt.Sprintf("(%s)", a.displayName)
}

func (a *App) navigate(destination string) {
	a.mu.Lock()
	a.location = destination
	a.mu.Unlock()
	a.log.Debug(context.Background(), "navigate", "to", destination)
}

// Run prints the banner and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "mypage CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "%s としてログイン中です\n", a.session.State().User.Email)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing storage", "error", err)
		}
	}
}
