package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/mypage/internal/client/login"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/common"
)

// getSimpleText, getTextWithDefault, getYesNo and getPassword are
// indirections used to facilitate testing. They point to interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getYesNo           = GetYesNo
	getPassword        = GetPassword
)

// maxLoginAttempts bounds how often one login command re-prompts.
const maxLoginAttempts = 3

// Login runs the login form.
//
// The recent accounts are listed first; typing a number pre-fills that
// email. The password is read without echo and is never stored. On failure
// the server's (or the generic) message is printed and the form asks again,
// offering the previous email and password as defaults. After a successful
// login the account home is shown.
func (a *App) Login(ctx context.Context) error {
	if s := a.session.State(); s.IsAuthenticated {
		fmt.Fprintf(a.out, "すでに %s としてログインしています\n", s.User.Email)
		return nil
	}

	form := login.NewController(a.auth, a.session, a.ledger, login.NavigatorFunc(a.navigate), a.log)
	defer form.Close()

	accounts := a.ledger.List()
	a.printAccounts(accounts)

	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		if err := a.fillLoginForm(form, accounts); err != nil {
			return err
		}

		err := form.Submit(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(a.out, "ログインしました: %s\n", a.session.State().User.DisplayName)
			if a.at(common.HomeDestination) {
				return a.Home(ctx)
			}
			return nil
		case errors.Is(err, login.ErrFormInvalid):
			v := form.View()
			for _, msg := range []string{v.EmailError, v.PasswordError} {
				if msg != "" {
					fmt.Fprintln(a.out, msg)
				}
			}
		default:
			fmt.Fprintln(a.out, form.View().Alert)
		}
	}
	return nil
}

func (a *App) fillLoginForm(form *login.Controller, accounts []models.RecentAccount) error {
	v := form.View()

	prompt := "メールアドレス"
	if len(accounts) > 0 {
		prompt += " (番号で選択)"
	}
	email, err := getTextWithDefault(a.reader, prompt, v.Email, a.out)
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(email); convErr == nil && n >= 1 && n <= len(accounts) {
		form.SelectRecentAccount(accounts[n-1].Email)
	} else {
		form.SetEmail(email)
	}

	passPrompt := "パスワード"
	if v.Password != "" {
		passPrompt += " (Enterで前回の入力を使用)"
	}
	pw, err := getPassword(passPrompt, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if len(pw) > 0 || v.Password == "" {
		form.SetPassword(string(pw))
	}

	remember, err := getYesNo(a.reader, "ログイン状態を保持しますか?", v.RememberMe, a.out)
	if err != nil {
		return err
	}
	form.SetRememberMe(remember)
	return nil
}

func (a *App) at(destination string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location == destination
}

// Logout clears the session on this device. The recent accounts are kept.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}
	if err := a.portal.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout not persisted", "error", err)
	}
	fmt.Fprintln(a.out, "ログアウトしました")
	return nil
}

func (a *App) Whoami(context.Context) error {
	s := a.session.State()
	if !s.IsAuthenticated {
		return common.ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s> (ID: %s)\n", s.User.DisplayName, s.User.Email, s.User.ID)
	return nil
}

// Accounts lists the recent accounts. An empty ledger prints nothing.
func (a *App) Accounts(context.Context) error {
	a.printAccounts(a.ledger.List())
	return nil
}

func (a *App) printAccounts(accounts []models.RecentAccount) {
	if len(accounts) == 0 {
		return
	}
	fmt.Fprintln(a.out, "最近使用したアカウント:")
	for i, acc := range accounts {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, acc.Email)
	}
}

// Forget removes email from the recent accounts.
func (a *App) Forget(ctx context.Context, email string) error {
	if err := a.ledger.Remove(ctx, email); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s を履歴から削除しました\n", email)
	return nil
}

// Reset removes the stored session and the recent accounts from this device
// after confirmation.
func (a *App) Reset(ctx context.Context) error {
	ok, err := getYesNo(a.reader, "この端末のログイン情報と履歴をすべて削除しますか?", false, a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.resetDevice(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "この端末のログイン情報と履歴を削除しました")
	return nil
}
