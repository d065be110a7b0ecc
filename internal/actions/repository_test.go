package actions

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/featuretour/pkg/api"
)

func recordTo(log *[]string, name string) api.Action {
	return func(ctx context.Context, step api.Step) {
		*log = append(*log, name)
	}
}

func TestRepository_GetPreservesRegistrationOrder(t *testing.T) {
	repo := NewRepository()
	var log []string

	repo.Add("Active Tour", "TextBoxPath", recordTo(&log, "a"))
	repo.Add("Active Tour", "TextBoxPath", recordTo(&log, "b"))
	repo.Add("Active Tour", "ComboBoxOption", recordTo(&log, "other"))
	repo.Add("Active Tour", "TextBoxPath", recordTo(&log, "c"))

	entries := repo.Get("Active Tour", "TextBoxPath")
	require.Len(t, entries, 3)
	for _, e := range entries {
		e.Action(context.Background(), api.Step{})
	}
	require.Equal(t, []string{"a", "b", "c"}, log)
}

func TestRepository_GetUnknownKeyIsEmpty(t *testing.T) {
	repo := NewRepository()
	require.Empty(t, repo.Get("nope", "nothing"))
}

func TestRepository_ToursDoNotCollide(t *testing.T) {
	repo := NewRepository()
	var log []string

	repo.Add("Tour A", "Button", recordTo(&log, "a"))
	repo.Add("Tour B", "Button", recordTo(&log, "b"))

	require.Len(t, repo.Get("Tour A", "Button"), 1)
	require.Len(t, repo.Get("Tour B", "Button"), 1)
	require.Empty(t, repo.Get("Tour C", "Button"))
}

func TestRepository_AnyTourMergedInRegistrationOrder(t *testing.T) {
	repo := NewRepository()
	var log []string

	repo.Add(AnyTour, "Button", recordTo(&log, "global-1"))
	repo.Add("Tour A", "Button", recordTo(&log, "scoped-1"))
	repo.Add(AnyTour, "Button", recordTo(&log, "global-2"))
	repo.Add("Tour A", "Button", recordTo(&log, "scoped-2"))

	for _, e := range repo.Get("Tour A", "Button") {
		e.Action(context.Background(), api.Step{})
	}
	require.Equal(t, []string{"global-1", "scoped-1", "global-2", "scoped-2"}, log)

	log = nil
	for _, e := range repo.Get("Tour B", "Button") {
		e.Action(context.Background(), api.Step{})
	}
	require.Equal(t, []string{"global-1", "global-2"}, log)
}

func TestRepository_GuardsCombineWithAnd(t *testing.T) {
	repo := NewRepository()
	yes := func(api.Step) bool { return true }
	no := func(api.Step) bool { return false }

	repo.Add("t", "always", func(context.Context, api.Step) {})
	repo.Add("t", "both", func(context.Context, api.Step) {}, yes, yes)
	repo.Add("t", "mixed", func(context.Context, api.Step) {}, yes, no)

	require.True(t, repo.Get("t", "always")[0].Allowed(api.Step{}))
	require.True(t, repo.Get("t", "both")[0].Allowed(api.Step{}))
	require.False(t, repo.Get("t", "mixed")[0].Allowed(api.Step{}))
}

func TestRepository_NilActionIgnored(t *testing.T) {
	repo := NewRepository()
	repo.Add("t", "x", nil)
	require.Equal(t, 0, repo.Len())
}

func TestRepository_ConcurrentRegistrationKeepsPerKeyOrder(t *testing.T) {
	repo := NewRepository()
	var wg sync.WaitGroup

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				repo.Add("t", "shared", func(context.Context, api.Step) {})
			}
		}(w)
	}
	wg.Wait()

	entries := repo.Get("t", "shared")
	require.Len(t, entries, 400)
	for i := 1; i < len(entries); i++ {
		require.Less(t, entries[i-1].seq, entries[i].seq)
	}
}
