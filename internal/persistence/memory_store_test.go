package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/petrijr/featuretour/pkg/api"
)

type InMemoryStoreTestSuite struct {
	TourStoreSuite
}

func (m *InMemoryStoreTestSuite) SetupTest() {
	m.Store = NewInMemoryStore()
}

func TestInMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreTestSuite))
}

func TestInMemoryStore_DoesNotAliasSteps(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	doc := sampleDocument("alias")
	require.NoError(t, store.SaveTour(ctx, doc))
	doc.Steps[0].Header = "mutated"

	got, err := store.GetTour(ctx, "alias")
	require.NoError(t, err)
	require.Equal(t, "Push me", got.Steps[0].Header)
}

func TestInMemoryEventStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent(ctx, api.TourEvent{RunID: "r1", Type: api.EventTourStarted, Step: -1}))
	require.NoError(t, store.AppendEvent(ctx, api.TourEvent{RunID: "r2", Type: api.EventTourStarted, Step: -1}))
	require.NoError(t, store.AppendEvent(ctx, api.TourEvent{RunID: "r1", Type: api.EventStepEntered, Step: 0, At: time.Unix(10, 0)}))

	events, err := store.ListEvents(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, api.EventTourStarted, events[0].Type)
	require.False(t, events[0].At.IsZero())
	require.Equal(t, api.EventStepEntered, events[1].Type)
	require.Equal(t, time.Unix(10, 0), events[1].At)

	none, err := store.ListEvents(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestNoopEventStore(t *testing.T) {
	var store EventStore = NoopEventStore{}
	require.NoError(t, store.AppendEvent(context.Background(), api.TourEvent{RunID: "r1"}))
	events, err := store.ListEvents(context.Background(), "r1")
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestCodec_RoundTripKeepsPlacementNames(t *testing.T) {
	doc := sampleDocument("codec")
	data, err := EncodeDocument(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"placement":"TopCenter"`)

	got, err := DecodeDocument(data)
	require.NoError(t, err)
	require.Equal(t, doc, got)

	_, err = DecodeDocument(nil)
	require.ErrorIs(t, err, ErrTourNotFound)

	_, err = DecodeDocument([]byte("{not json"))
	require.Error(t, err)
}
