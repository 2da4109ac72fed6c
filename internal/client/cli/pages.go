package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/common"
)

// Home shows the account home: dashboard, data usage and unread notices.
func (a *App) Home(ctx context.Context) error {
	o, err := a.portal.Overview(ctx)
	if err != nil {
		return err
	}

	d := o.Dashboard
	fmt.Fprintf(a.out, "== %s 様のマイページ ==\n", d.DisplayName)
	fmt.Fprintf(a.out, "電話番号: %s\n", d.PhoneNumber)
	fmt.Fprintf(a.out, "ご契約プラン: %s\n", d.PlanName)
	fmt.Fprintf(a.out, "%s ご請求額: %s\n", d.BillingMonth, yen(d.CurrentBillAmount))
	a.printUsage(o.DataUsage)

	unread := 0
	for _, n := range o.Notifications {
		if !n.Read {
			unread++
		}
	}
	fmt.Fprintf(a.out, "未読のお知らせ: %d件\n", unread)
	return nil
}

func (a *App) Contract(ctx context.Context) error {
	c, err := a.portal.Contract(ctx)
	if err != nil {
		return err
	}
	a.printContract(c)
	return nil
}

func (a *App) printContract(c *models.Contract) {
	fmt.Fprintf(a.out, "契約番号: %s\n", c.ContractID)
	fmt.Fprintf(a.out, "電話番号: %s\n", c.PhoneNumber)
	fmt.Fprintf(a.out, "プラン: %s (%s) 月額 %s\n", c.PlanName, c.PlanID, yen(c.MonthlyFee))
	fmt.Fprintf(a.out, "契約開始日: %s  状態: %s\n", c.StartDate, c.Status)
	if len(c.Options) > 0 {
		fmt.Fprintf(a.out, "オプション: %s\n", strings.Join(c.Options, ", "))
	}
}

func (a *App) Billing(ctx context.Context, month string) error {
	b, err := a.portal.Billing(ctx, month)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s のご請求 (%s)\n", b.Month, b.Status)
	for _, item := range b.Items {
		fmt.Fprintf(a.out, "  %-24s %10s\n", item.Name, yen(item.Amount))
	}
	fmt.Fprintf(a.out, "合計: %s  お支払期日: %s\n", yen(b.Total), b.DueDate)
	return nil
}

func (a *App) Usage(ctx context.Context) error {
	u, err := a.portal.DataUsage(ctx)
	if err != nil {
		return err
	}
	a.printUsage(u)
	for _, d := range u.Daily {
		fmt.Fprintf(a.out, "  %s  %.0fMB\n", d.Date, d.UsedMB)
	}
	return nil
}

func (a *App) printUsage(u *models.DataUsage) {
	fmt.Fprintf(a.out, "データ使用量: %.1fGB / %.1fGB (残り %.1fGB)\n", u.UsedGB, u.LimitGB, u.RemainingGB())
	if u.PeriodStart != "" {
		fmt.Fprintf(a.out, "集計期間: %s 〜 %s\n", u.PeriodStart, u.PeriodEnd)
	}
}

func (a *App) Options(ctx context.Context) error {
	opts, err := a.portal.Options(ctx)
	if err != nil {
		return err
	}
	for _, o := range opts {
		mark := " "
		if o.Subscribed {
			mark = "*"
		}
		fmt.Fprintf(a.out, "[%s] %s  %s  月額 %s\n", mark, o.ID, o.Name, yen(o.MonthlyFee))
	}
	return nil
}

func (a *App) Subscribe(ctx context.Context, optionID string) error {
	if err := a.portal.SubscribeOption(ctx, optionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "オプション %s を申し込みました\n", optionID)
	return nil
}

func (a *App) Unsubscribe(ctx context.Context, optionID string) error {
	if err := a.portal.UnsubscribeOption(ctx, optionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "オプション %s を解約しました\n", optionID)
	return nil
}

func (a *App) Notifications(ctx context.Context) error {
	list, err := a.portal.Notifications(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "お知らせはありません")
		return nil
	}
	for _, n := range list {
		mark := "未読"
		if n.Read {
			mark = "既読"
		}
		fmt.Fprintf(a.out, "%s [%s] %s %s\n", n.ID, mark, n.PublishedAt.Format("2006-01-02"), n.Title)
	}
	return nil
}

func (a *App) Read(ctx context.Context, notificationID string) error {
	if err := a.portal.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "お知らせ %s を既読にしました\n", notificationID)
	return nil
}

// Profile asks for the new values; an empty answer leaves a field as is.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	var upd models.ProfileUpdate
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"お名前 (変更しない場合は空欄)", &upd.Name},
		{"電話番号 (変更しない場合は空欄)", &upd.PhoneNumber},
		{"住所 (変更しない場合は空欄)", &upd.Address},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	p, err := a.portal.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "プロフィールを更新しました: %s / %s / %s\n", p.Name, p.PhoneNumber, p.Address)
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	current, err := getPassword("現在のパスワード", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("新しいパスワード", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("新しいパスワード (確認)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if len(current) == 0 || len(next) == 0 {
		return fmt.Errorf("%w: パスワードを入力してください", common.ErrorValidation)
	}
	if string(next) != string(confirm) {
		return fmt.Errorf("%w: 新しいパスワードが一致しません", common.ErrorValidation)
	}

	req := models.PasswordChange{CurrentPassword: string(current), NewPassword: string(next)}
	if err := a.portal.ChangePassword(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "パスワードを変更しました")
	return nil
}

func (a *App) Prefs(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	var p models.NotificationPreferences
	for _, f := range []struct {
		prompt string
		def    bool
		dst    *bool
	}{
		{"メールで通知を受け取りますか?", true, &p.Email},
		{"SMSで通知を受け取りますか?", false, &p.SMS},
		{"プッシュ通知を受け取りますか?", true, &p.Push},
		{"キャンペーン情報を受け取りますか?", false, &p.Campaign},
	} {
		v, err := getYesNo(a.reader, f.prompt, f.def, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	saved, err := a.portal.UpdateNotificationPreferences(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "通知設定を更新しました: メール=%s SMS=%s プッシュ=%s キャンペーン=%s\n",
		onOff(saved.Email), onOff(saved.SMS), onOff(saved.Push), onOff(saved.Campaign))
	return nil
}

func (a *App) Plan(ctx context.Context, planID string) error {
	c, err := a.portal.ChangePlan(ctx, planID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "プランを変更しました")
	a.printContract(c)
	return nil
}

// yen formats an amount as ¥1,234.
func yen(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprint(amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "¥" + b.String()
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
