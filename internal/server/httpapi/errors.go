package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/server/mypage"
	"github.com/dmitrijs2005/mypage/internal/server/users"
)

// User-facing messages. The client shows 4xx messages verbatim.
const (
	msgInvalidCredentials  = "メールアドレスまたはパスワードが正しくありません"
	msgAccountLocked       = "アカウントがロックされています"
	msgMalformedBody       = "リクエストの形式が正しくありません"
	msgCredentialsRequired = "メールアドレスとパスワードを入力してください"
	msgUnauthorized        = "認証が必要です。再度ログインしてください"
	msgTokenExpired        = "セッションの有効期限が切れました"
	msgInternal            = "サーバー内部でエラーが発生しました"
	msgNotFound            = "ページが見つかりません"
	msgMethodNotAllowed    = "許可されていないメソッドです"
	msgOK                  = "OK"
)

func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", msgInvalidCredentials
	case errors.Is(err, common.ErrAccountLocked):
		return http.StatusUnauthorized, "ACCOUNT_LOCKED", msgAccountLocked
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "TOKEN_EXPIRED", msgTokenExpired
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, mypage.ErrUnknownUser):
		return http.StatusUnauthorized, "UNAUTHORIZED", msgUnauthorized
	case errors.Is(err, users.ErrWrongPassword):
		return http.StatusBadRequest, "WRONG_PASSWORD", "現在のパスワードが正しくありません"
	case errors.Is(err, users.ErrWeakPassword):
		return http.StatusBadRequest, "WEAK_PASSWORD", "新しいパスワードは8文字以上で入力してください"
	case errors.Is(err, mypage.ErrInvalidMonth):
		return http.StatusBadRequest, "VALIDATION_ERROR", "請求月は YYYY-MM 形式で指定してください"
	case errors.Is(err, mypage.ErrEmptyProfileUpdate):
		return http.StatusBadRequest, "VALIDATION_ERROR", "変更する項目を入力してください"
	case errors.Is(err, mypage.ErrOptionNotFound):
		return http.StatusNotFound, "NOT_FOUND", "指定されたオプションは存在しません"
	case errors.Is(err, mypage.ErrNotificationNotFound):
		return http.StatusNotFound, "NOT_FOUND", "お知らせが見つかりません"
	case errors.Is(err, mypage.ErrPlanNotFound):
		return http.StatusNotFound, "NOT_FOUND", "指定されたプランは存在しません"
	case errors.Is(err, mypage.ErrBillingNotFound):
		return http.StatusNotFound, "NOT_FOUND", "指定された月の請求情報はありません"
	case errors.Is(err, mypage.ErrAlreadySubscribed):
		return http.StatusConflict, "CONFLICT", "すでにご契約中のオプションです"
	case errors.Is(err, mypage.ErrNotSubscribed):
		return http.StatusConflict, "CONFLICT", "ご契約のないオプションです"
	case errors.Is(err, mypage.ErrSamePlan):
		return http.StatusConflict, "CONFLICT", "現在ご契約中のプランです"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", msgInternal
	}
}
