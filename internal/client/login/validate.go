package login

import (
	"regexp"
	"strings"
)

const (
	MsgEmailRequired    = "メールアドレスを入力してください"
	MsgEmailInvalid     = "有効なメールアドレスを入力してください"
	MsgPasswordRequired = "パスワードを入力してください"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return MsgEmailRequired
	case !emailPattern.MatchString(email):
		return MsgEmailInvalid
	default:
		return ""
	}
}

func validatePassword(password string) string {
	if password == "" {
		return MsgPasswordRequired
	}
	return ""
}
