package leads

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestValidateContactRequiresNameAndEmail(t *testing.T) {
	t.Parallel()

	err := Form{Kind: KindContact, FullName: "  "}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"fullName", "email"}, verr.Fields())
	require.False(t, verr.Has("phone"))

	require.NoError(t, Form{Kind: KindContact, FullName: "Aysel", Email: "a@example.com"}.Validate())
}

func TestValidateMembershipRequiresPhone(t *testing.T) {
	t.Parallel()

	err := Form{Kind: KindMembership, FullName: "Aysel", Email: "a@example.com"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"phone"}, verr.Fields())
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	err := Form{Kind: "newsletter", FullName: "Aysel", Email: "a@example.com"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"kind"}, verr.Fields())
}

func TestValidateIsPresenceOnly(t *testing.T) {
	t.Parallel()

	require.NoError(t, Form{Kind: KindContact, FullName: "x", Email: "not-an-email"}.Validate())
}

func TestFormFromValuesSplitsAddOns(t *testing.T) {
	t.Parallel()

	v := url.Values{}
	v.Set("fullName", " Aysel ")
	v.Set("email", "a@example.com")
	v.Add("addOns", "spa-wellness, fitness-zone")
	v.Add("addOns", "womens-sanctuary")
	v.Set("billing", "ANNUAL")

	f := FormFromValues(KindMembership, v)
	require.Equal(t, "Aysel", f.FullName)
	require.Equal(t, []string{"spa-wellness", "fitness-zone", "womens-sanctuary"}, f.AddOns)
	require.Equal(t, "annual", f.Billing)
}

type countingRecorder struct {
	mu   sync.Mutex
	seen map[string]int
}

func (r *countingRecorder) LeadSubmitted(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[string]int{}
	}
	r.seen[kind+"/"+outcome]++
}

func TestServiceSubmitSavesLead(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &countingRecorder{}
	store := NewMemoryStore(0)
	svc := NewService(store, WithRecorder(rec), WithClock(func() time.Time { return now }))

	lead, err := svc.Submit(context.Background(), "1.2.3.4", Form{
		Kind: KindContact, FullName: "Aysel", Email: "a@example.com", Message: "Hi",
	})
	require.NoError(t, err)
	require.Len(t, lead.ID, 26)
	require.Equal(t, now, lead.CreatedAt)

	recent, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, lead.ID, recent[0].ID)

	_, err = svc.Submit(context.Background(), "1.2.3.4", Form{Kind: KindContact})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 1, rec.seen["contact/saved"])
	require.Equal(t, 1, rec.seen["contact/invalid"])
}

type failingStore struct{}

func (failingStore) Save(context.Context, Lead) error { return errors.New("disk full") }
func (failingStore) Recent(context.Context, int) ([]Lead, error) {
	return nil, nil
}

func TestServiceSubmitWrapsStoreErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(failingStore{})
	_, err := svc.Submit(context.Background(), "", Form{Kind: KindContact, FullName: "a", Email: "b"})
	require.ErrorContains(t, err, "disk full")
}

func TestServiceRateLimitsPerClient(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewService(nil, WithLimiter(NewIPLimiter(2, time.Minute, clock)), WithClock(clock))
	form := Form{Kind: KindContact, FullName: "a", Email: "b"}

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), "10.0.0.1", form)
		require.NoError(t, err)
	}
	_, err := svc.Submit(context.Background(), "10.0.0.1", form)
	require.ErrorIs(t, err, ErrRateLimited)

	_, err = svc.Submit(context.Background(), "10.0.0.2", form)
	require.NoError(t, err)
}

func TestServiceInvalidFormsDoNotSpendBudget(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewService(nil, WithLimiter(NewIPLimiter(1, time.Hour, clock)), WithClock(clock))

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(context.Background(), "10.0.0.1", Form{Kind: KindContact, FullName: "a"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
	_, err := svc.Submit(context.Background(), "10.0.0.1", Form{Kind: KindContact, FullName: "a", Email: "b"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "10.0.0.1", Form{Kind: KindContact, FullName: "a", Email: "b"})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestIPLimiterRefills(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l := NewIPLimiter(1, time.Minute, func() time.Time { return now })
	require.True(t, l.Allow("ip"))
	require.False(t, l.Allow("ip"))

	now = now.Add(time.Minute)
	require.True(t, l.Allow("ip"))

	var disabled *IPLimiter
	require.True(t, disabled.Allow("ip"))
	require.Nil(t, NewIPLimiter(0, time.Minute, nil))
}

func TestMemoryStoreCapsAndOrders(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, Lead{ID: id}))
	}
	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c", got[0].ID)
	require.Equal(t, "b", got[1].ID)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := Lead{ID: "01A", CreatedAt: base, Form: Form{Kind: KindMembership, FullName: "A", Email: "a@x", Phone: "1", AddOns: []string{"spa-wellness"}, Billing: "annual"}}
	second := Lead{ID: "01B", CreatedAt: base.Add(time.Minute), Form: Form{Kind: KindContact, FullName: "B", Email: "b@x"}}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "01B", got[0].ID)
	require.Equal(t, []string{"spa-wellness"}, got[1].AddOns)
	require.Equal(t, KindMembership, got[1].Kind)
	require.True(t, base.Equal(got[1].CreatedAt))

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	key := "crown:leads:test:" + time.Now().Format("150405.000000000")
	store := NewRedisStoreWithClient(client, key, 2)
	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))
	t.Cleanup(func() {
		_ = client.Del(context.Background(), key).Err()
		_ = store.Close()
	})

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"01A", "01B", "01C"} {
		lead := Lead{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute), Form: Form{Kind: KindMembership, FullName: "A", Email: "a@x", Phone: "1", AddOns: []string{"spa-wellness"}}}
		require.NoError(t, store.Save(ctx, lead))
	}

	got, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2, "list is capped at max")
	require.Equal(t, "01C", got[0].ID)
	require.Equal(t, "01B", got[1].ID)
	require.Equal(t, []string{"spa-wellness"}, got[0].AddOns)
	require.True(t, base.Add(2*time.Minute).Equal(got[0].CreatedAt))

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "01C", limited[0].ID)
}
