package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]dmn.Account
}

func newFakeAccountRepo(accounts ...*dmn.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[uuid.UUID]dmn.Account)}
	for _, a := range accounts {
		repo.accounts[a.ID] = *a
	}
	return repo
}

func (f *fakeAccountRepo) Save(_ context.Context, account *dmn.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.accounts {
		if id != account.ID && a.Username == account.Username {
			return dmn.ErrUsernameConflict
		}
	}
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, dmn.ErrAccountNotFound
	}
	return &a, nil
}

func (f *fakeAccountRepo) ByUsername(_ context.Context, username string) (*dmn.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, dmn.ErrAccountNotFound
}

type fakeRunRepo struct {
	mu        sync.Mutex
	runs      []*dmn.Run
	lastLimit int
}

func (f *fakeRunRepo) Save(_ context.Context, run *dmn.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, dmn.ErrRunNotFound
}

func (f *fakeRunRepo) Recent(_ context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit

	var out []*dmn.Run
	for idx := len(f.runs) - 1; idx >= 0 && len(out) < limit; idx-- {
		if accountID == uuid.Nil || f.runs[idx].AccountID == accountID {
			out = append(out, f.runs[idx].Summary())
		}
	}
	return out, nil
}

type fakePathCache struct {
	mu       sync.Mutex
	entries  map[string]pathfinding.Result
	computes int
}

func newFakePathCache() *fakePathCache {
	return &fakePathCache{entries: make(map[string]pathfinding.Result)}
}

func (f *fakePathCache) Remember(ctx context.Context, key string, compute func(context.Context) (pathfinding.Result, error)) (pathfinding.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if res, ok := f.entries[key]; ok {
		return res, nil
	}
	f.computes++
	res, err := compute(ctx)
	if err != nil {
		return res, err
	}
	f.entries[key] = res
	return res, nil
}

type fakeLeaderboard struct {
	mu     sync.Mutex
	boards map[string]map[string]float64
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{boards: make(map[string]map[string]float64)}
}

func (f *fakeLeaderboard) Submit(_ context.Context, board, member string, score float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[board]
	if !ok {
		b = make(map[string]float64)
		f.boards[board] = b
	}
	if old, ok := b[member]; !ok || score < old {
		b[member] = score
	}
	return nil
}

func (f *fakeLeaderboard) Top(_ context.Context, board string, n int64) ([]i.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []i.LeaderboardEntry
	for member, score := range f.boards[board] {
		entries = append(entries, i.LeaderboardEntry{Member: member, Score: score})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Score < entries[b].Score })
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	for idx := range entries {
		entries[idx].Rank = int64(idx) + 1
	}
	return entries, nil
}

func (f *fakeLeaderboard) Count(_ context.Context, board string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.boards[board])), nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) Generate(claims i.TokenClaims, _ time.Duration) (string, error) {
	return "token-" + claims.Username, nil
}

func (fakeTokenizer) Decode(token string) (*i.TokenClaims, error) {
	return &i.TokenClaims{Username: token}, nil
}
