package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mypage/internal/common"
)

// ResetDevice removes the stored session and recent-accounts records in one
// repository call, then signs session out and empties ledger. On failure
// neither store is touched.
func ResetDevice(ctx context.Context, repo metadata.Repository, session *SessionStore, ledger *RecentAccounts) error {
	if err := repo.Delete(ctx, common.SessionKey, common.RecentAccountsKey); err != nil {
		return fmt.Errorf("reset device: %w", err)
	}
	session.reset()
	ledger.reset()
	return nil
}
