package login

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
)

var (
	ErrSubmitInProgress = errors.New("login: submission already in progress")
	ErrFormInvalid      = errors.New("login: form is not valid")
	ErrFormClosed       = errors.New("login: form is closed")
)

// View is a snapshot of the form for rendering. Field errors are only set
// once the field has been touched.
type View struct {
	State         State
	Email         string
	Password      string
	RememberMe    bool
	EmailError    string
	PasswordError string
	Alert         string
	CanSubmit     bool
}

type Controller struct {
	auth     Authenticator
	session  SessionWriter
	accounts AccountRecorder
	nav      Navigator
	log      logging.Logger
	now      func() time.Time

	mu           sync.Mutex
	state        State
	email        string
	password     string
	rememberMe   bool
	emailTouched bool
	passTouched  bool
	alert        string
	closed       bool
	navigated    bool
}

func NewController(auth Authenticator, session SessionWriter, accounts AccountRecorder, nav Navigator, log logging.Logger) *Controller {
	return &Controller{
		auth:     auth,
		session:  session,
		accounts: accounts,
		nav:      nav,
		log:      log,
		now:      time.Now,
		state:    Idle,
	}
}

// editable must be called with mu held.
func (c *Controller) editable() bool {
	if c.closed || c.state == Submitting || c.state == Success {
		return false
	}
	if c.state == Failed {
		c.state = Idle
	}
	return true
}

func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editable() {
		return
	}
	c.email = email
	c.emailTouched = true
}

func (c *Controller) SetPassword(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editable() {
		return
	}
	c.password = password
	c.passTouched = true
}

func (c *Controller) SetRememberMe(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editable() {
		return
	}
	c.rememberMe = v
}

// SelectRecentAccount pre-fills the email. It never touches the password
// and never submits.
func (c *Controller) SelectRecentAccount(email string) {
	c.SetEmail(email)
}

// canSubmit must be called with mu held.
func (c *Controller) canSubmit() bool {
	if c.closed || (c.state != Idle && c.state != Failed) {
		return false
	}
	return c.fieldsValid()
}

func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmit()
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:      c.state,
		Email:      c.email,
		Password:   c.password,
		RememberMe: c.rememberMe,
		Alert:      c.alert,
		CanSubmit:  c.canSubmit(),
	}
	if c.emailTouched {
		v.EmailError = validateEmail(c.email)
	}
	if c.passTouched {
		v.PasswordError = validatePassword(c.password)
	}
	return v
}

// Close marks the form as gone. A response that arrives afterwards is
// dropped without touching the form, the session, the recent accounts or
// the navigator.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Submit sends the credentials and blocks until the outcome is applied.
// It returns nil on success, the classified error on failure,
// ErrFormInvalid when validation does not pass, ErrSubmitInProgress while
// another submission is pending and ErrFormClosed once the form is closed.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.begin()
	if err != nil {
		return err
	}

	resp, err := c.auth.Login(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug(ctx, "login: response after close discarded")
		return ErrFormClosed
	}

	if err == nil {
		err = validResponse(resp)
	}
	if err != nil {
		ce := client.AsClassified(err)
		c.state = Failed
		c.alert = ce.Message
		c.mu.Unlock()

		c.log.Info(ctx, "login failed", "kind", ce.Kind, "status", ce.Status, "code", ce.Code)
		return ce
	}

	c.state = Success
	navigate := !c.navigated
	c.navigated = true
	c.mu.Unlock()

	c.complete(ctx, req.Email, resp)
	if navigate {
		c.nav.Navigate(common.HomeDestination)
	}
	return nil
}

func (c *Controller) begin() (models.LoginRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return models.LoginRequest{}, ErrFormClosed
	case c.state == Submitting || c.state == Validating:
		return models.LoginRequest{}, ErrSubmitInProgress
	case c.state == Success:
		return models.LoginRequest{}, ErrFormClosed
	}

	prev := c.state
	c.state = Validating
	c.emailTouched = true
	c.passTouched = true
	if !c.fieldsValid() {
		c.state = prev
		return models.LoginRequest{}, ErrFormInvalid
	}

	c.state = Submitting
	c.alert = ""
	return models.LoginRequest{
		Email:      strings.TrimSpace(c.email),
		Password:   c.password,
		RememberMe: c.rememberMe,
	}, nil
}

func (c *Controller) fieldsValid() bool {
	return validateEmail(c.email) == "" && validatePassword(c.password) == ""
}

func validResponse(resp *models.LoginResponse) error {
	if resp == nil || resp.User.ID == "" || resp.AccessToken == "" {
		return &client.ClassifiedError{
			Kind:    client.KindUnexpected,
			Message: client.MessageUnexpected,
			Cause:   errors.New("login response without user id or access token"),
		}
	}
	return nil
}

// complete records the outcome locally. Storage failures are logged; the
// in-memory session is already set, so the login still succeeds.
func (c *Controller) complete(ctx context.Context, email string, resp *models.LoginResponse) {
	userEmail := resp.User.Email
	if userEmail == "" {
		userEmail = email
	}
	user := models.User{ID: resp.User.ID, DisplayName: resp.User.Name, Email: userEmail}

	if err := c.session.Login(ctx, user, resp.Tokens(c.now())); err != nil {
		c.log.Warn(ctx, "login: session not persisted", "error", err)
	}
	if err := c.accounts.RecordSuccessfulLogin(ctx, email); err != nil {
		c.log.Warn(ctx, "login: recent account not recorded", "error", err)
	}
	c.log.Info(ctx, "login succeeded", "user_id", user.ID)
}
