package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
)

const DefaultMaxRecentAccounts = 5

// DemoAccounts are seeded into an empty ledger outside production.
var DemoAccounts = []string{"test@docomo.ne.jp", "demo@docomo.ne.jp"}

type RecentAccountsOptions struct {
	// Max bounds the ledger; values below 1 select DefaultMaxRecentAccounts.
	Max int
	// FoldCase makes "A@x.com" and "a@x.com" the same entry.
	FoldCase bool
	// Seed is written when nothing usable is stored yet.
	Seed []string
	Now  func() time.Time
}

// RecentAccounts is the most-recently-used list of login emails. Index 0 is
// the most recent; there is at most one entry per key.
type RecentAccounts struct {
	repo metadata.Repository
	log  logging.Logger
	opts RecentAccountsOptions

	mu       sync.Mutex
	accounts []models.RecentAccount
}

func NewRecentAccounts(ctx context.Context, repo metadata.Repository, opts RecentAccountsOptions, log logging.Logger) *RecentAccounts {
	if opts.Max < 1 {
		opts.Max = DefaultMaxRecentAccounts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &RecentAccounts{repo: repo, log: log, opts: opts}

	accounts, found := r.load(ctx)
	if !found && len(opts.Seed) > 0 {
		accounts = r.seed()
		if err := r.persist(ctx, accounts); err != nil {
			log.Warn(ctx, "recent accounts: seed not persisted", "error", err)
		}
	}
	r.accounts = accounts
	return r
}

// load reports found=false when the key is absent or unusable.
func (r *RecentAccounts) load(ctx context.Context) ([]models.RecentAccount, bool) {
	raw, err := r.repo.Get(ctx, common.RecentAccountsKey)
	if err != nil {
		r.log.Warn(ctx, "recent accounts: read failed, starting empty", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	var stored []models.RecentAccount
	if err := json.Unmarshal(raw, &stored); err != nil {
		r.log.Warn(ctx, "recent accounts: malformed record ignored", "error", err)
		return nil, false
	}

	// A stored list may predate the current Max or FoldCase setting.
	accounts := make([]models.RecentAccount, 0, len(stored))
	for _, a := range stored {
		email := strings.TrimSpace(a.Email)
		if email == "" || r.index(accounts, email) >= 0 {
			continue
		}
		a.Email = email
		accounts = append(accounts, a)
	}
	if len(accounts) > r.opts.Max {
		accounts = accounts[:r.opts.Max]
	}
	return accounts, true
}

func (r *RecentAccounts) seed() []models.RecentAccount {
	now := r.opts.Now()
	accounts := make([]models.RecentAccount, 0, len(r.opts.Seed))
	for i, email := range r.opts.Seed {
		if len(accounts) == r.opts.Max || r.index(accounts, email) >= 0 {
			continue
		}
		// Keep seed order as MRU order.
		accounts = append(accounts, models.RecentAccount{
			Email:      email,
			LastUsedAt: now.Add(-time.Duration(i) * time.Second),
		})
	}
	return accounts
}

func (r *RecentAccounts) key(email string) string {
	if r.opts.FoldCase {
		return strings.ToLower(email)
	}
	return email
}

func (r *RecentAccounts) index(accounts []models.RecentAccount, email string) int {
	k := r.key(email)
	return slices.IndexFunc(accounts, func(a models.RecentAccount) bool {
		return r.key(a.Email) == k
	})
}

// RecordSuccessfulLogin moves email to the front, inserting it if needed,
// and drops the least recently used entries beyond Max.
func (r *RecentAccounts) RecordSuccessfulLogin(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.RecentAccount, 0, len(r.accounts)+1)
	next = append(next, models.RecentAccount{Email: email, LastUsedAt: r.opts.Now()})
	for _, a := range r.accounts {
		if r.key(a.Email) != r.key(email) {
			next = append(next, a)
		}
	}
	if len(next) > r.opts.Max {
		next = next[:r.opts.Max]
	}

	r.accounts = next
	return r.persist(ctx, next)
}

// Remove deletes the entry for email. Removing an absent email is a no-op.
func (r *RecentAccounts) Remove(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(r.accounts, strings.TrimSpace(email))
	if i < 0 {
		return nil
	}

	r.accounts = slices.Delete(slices.Clone(r.accounts), i, i+1)
	return r.persist(ctx, r.accounts)
}

// List returns the entries, most recent first.
func (r *RecentAccounts) List() []models.RecentAccount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.accounts)
}

// reset empties the in-memory ledger after its record was removed
// elsewhere. Nothing is written back.
func (r *RecentAccounts) reset() {
	r.mu.Lock()
	r.accounts = nil
	r.mu.Unlock()
}

func (r *RecentAccounts) persist(ctx context.Context, accounts []models.RecentAccount) error {
	if accounts == nil {
		accounts = []models.RecentAccount{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("recent accounts: encode: %w", err)
	}
	if err := r.repo.Set(ctx, common.RecentAccountsKey, raw); err != nil {
		return fmt.Errorf("recent accounts: persist: %w", err)
	}
	return nil
}
