package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/customerconnect/internal/client/api"
	"github.com/dmitrijs2005/customerconnect/internal/client/config"
	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/client/router"
	"github.com/dmitrijs2005/customerconnect/internal/client/services"
	"github.com/dmitrijs2005/customerconnect/internal/client/session"
	"github.com/dmitrijs2005/customerconnect/internal/client/storage"
	"github.com/dmitrijs2005/customerconnect/internal/logging"
)

const expiredNotice = "Session expired, please log in again"

// SessionManager is the part of *session.Manager the console drives.
type SessionManager interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Register(ctx context.Context, email, password, name string) (*session.Session, error)
	LoginWithGoogle(ctx context.Context, accessToken string) (*session.Session, error)
	CompleteGoogleCallback(ctx context.Context, code string) (*session.Session, error)
	Logout(ctx context.Context) error
	Current() *session.Session
	IsAuthenticated() bool
	OnExpired(fn func())
}

// Workspace is the part of *services.WorkspaceService the views use.
type Workspace interface {
	Dashboard(ctx context.Context) (*services.Overview, error)
	Customers(ctx context.Context, query string) ([]models.Customer, error)
	Segments(ctx context.Context) ([]models.Segment, error)
	Segment(ctx context.Context, id string) (*models.Segment, error)
	CreateSegment(ctx context.Context, seg models.Segment) (*models.Segment, error)
	UpdateSegment(ctx context.Context, id string, seg models.Segment) (*models.Segment, error)
	PreviewSegment(ctx context.Context, criteria models.SegmentCriteria) (*models.SegmentPreview, error)
	DeleteSegment(ctx context.Context, id string) error
	Campaigns(ctx context.Context, status string) ([]models.Campaign, error)
	CreateCampaign(ctx context.Context, d models.CampaignDraft) (*models.Campaign, error)
	SendCampaign(ctx context.Context, id string) error
	DeleteCampaign(ctx context.Context, id string) error
	Analytics(ctx context.Context, rangeLabel string) (*models.AnalyticsReport, error)
	Ask(ctx context.Context, query string) (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) error
}

type App struct {
	config    *config.Config
	session   SessionManager
	workspace Workspace
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	route   string
	expired atomic.Bool

	// invalidate drops cached API responses; nil when there is no cache.
	invalidate func()
	closeFn    func() error
}

// NewApp wires storage, the REST client, the session manager and the
// workspace for c. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.StatePath)
	if err != nil {
		logger.Error(ctx, "error initializing state database", "path", c.StatePath, "error", err)
		return nil, err
	}

	client := api.New(c.APIBaseURL, c.RequestTimeout, c.CacheTTL, logger)
	manager := session.NewManager(client, storage.NewSQLiteRepository(db), logger)
	client.UseSession(manager)

	a := newApp(manager, services.NewWorkspaceService(client, logger), os.Stdin, os.Stdout, logger)
	a.config = c
	a.invalidate = client.InvalidateCache
	a.closeFn = db.Close
	return a, nil
}

func newApp(s SessionManager, ws Workspace, in io.Reader, out io.Writer, logger logging.Logger) *App {
	a := &App{
		session:   s,
		workspace: ws,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
		route:     router.Auth,
	}
	// May run on any goroutine that hit the 401; the REPL reports it after
	// the current command.
	s.OnExpired(func() { a.expired.Store(true) })
	return a
}

// Run restores the persisted session, shows the landing view and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)

	a.println("Welcome to CustomerConnect (type 'help' for commands)")
	if s := a.session.Current(); s != nil {
		a.printf("Signed in as %s <%s>\n", s.DisplayName, s.Email)
	}
	a.navigate(ctx, router.Landing(a.session.IsAuthenticated()), nil)

	a.runREPL(ctx)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) Route() string {
	return a.route
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// checkExpired reports a forced logout that happened during the last
// command and moves to the auth view.
func (a *App) checkExpired() {
	if !a.expired.Swap(false) {
		return
	}
	if a.invalidate != nil {
		a.invalidate()
	}
	a.println(expiredNotice)
	a.route = router.Auth
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
