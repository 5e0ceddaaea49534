package tips

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"productivity/internal/domain"
	"productivity/internal/modules/live"
	"productivity/internal/repository"
)

type MockTipStore struct {
	mock.Mock
}

func (m *MockTipStore) ListTips(ctx context.Context) ([]domain.Tip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tip), args.Error(1)
}

func (m *MockTipStore) ListTipsByCategory(ctx context.Context, category string) ([]domain.Tip, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tip), args.Error(1)
}

func (m *MockTipStore) SearchTips(ctx context.Context, query string) ([]domain.Tip, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tip), args.Error(1)
}

func (m *MockTipStore) CreateTip(ctx context.Context, text, category string) (*domain.Tip, error) {
	args := m.Called(ctx, text, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tip), args.Error(1)
}

func (m *MockTipStore) ViewTip(ctx context.Context, id string) (*domain.Tip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tip), args.Error(1)
}

type recordingPublisher struct {
	events []live.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev live.Event) {
	p.events = append(p.events, ev)
}

func TestService_Random_PicksByIndex(t *testing.T) {
	store := new(MockTipStore)
	pub := &recordingPublisher{}
	all := []domain.Tip{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	store.On("ListTips", mock.Anything).Return(all, nil)
	store.On("ViewTip", mock.Anything, "c").Return(&domain.Tip{ID: "c", Views: 1}, nil)

	var gotN int
	svc := NewService(store, pub, WithRandom(func(n int) int {
		gotN = n
		return 2
	}))

	tip, err := svc.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c", tip.ID)
	assert.Equal(t, 1, tip.Views)
	assert.Equal(t, 3, gotN)

	require.Len(t, pub.events, 1)
	assert.Equal(t, live.EventTipViewed, pub.events[0].Type)
	store.AssertExpectations(t)
}

func TestService_Random_NoTips(t *testing.T) {
	store := new(MockTipStore)
	store.On("ListTips", mock.Anything).Return([]domain.Tip{}, nil)

	svc := NewService(store, nil, WithRandom(func(int) int {
		t.Fatal("picker must not run without tips")
		return 0
	}))

	_, err := svc.Random(context.Background())
	assert.ErrorIs(t, err, ErrNoTips)
	store.AssertNotCalled(t, "ViewTip", mock.Anything, mock.Anything)
}

func TestService_Random_ListError(t *testing.T) {
	store := new(MockTipStore)
	boom := errors.New("boom")
	store.On("ListTips", mock.Anything).Return(nil, boom)

	_, err := NewService(store, nil).Random(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_Search_EmptyQuery(t *testing.T) {
	store := new(MockTipStore)
	svc := NewService(store, nil)

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	store.AssertNotCalled(t, "SearchTips", mock.Anything, mock.Anything)
}

func TestService_Create_PublishesEvent(t *testing.T) {
	store := new(MockTipStore)
	pub := &recordingPublisher{}
	created := &domain.Tip{ID: "x", Text: "Test tip", Category: "Planning"}
	store.On("CreateTip", mock.Anything, "Test tip", "Planning").Return(created, nil)

	tip, err := NewService(store, pub).Create(context.Background(), CreateTipRequest{Text: "Test tip", Category: "Planning"})
	require.NoError(t, err)
	assert.Equal(t, created, tip)
	require.Len(t, pub.events, 1)
	assert.Equal(t, live.EventTipCreated, pub.events[0].Type)
}

func TestService_View_NotFoundPublishesNothing(t *testing.T) {
	store := new(MockTipStore)
	pub := &recordingPublisher{}
	store.On("ViewTip", mock.Anything, "missing").Return(nil, repository.ErrTipNotFound)

	_, err := NewService(store, pub).View(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrTipNotFound)
	assert.Empty(t, pub.events)
}

func TestService_RandomOverRealStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	for _, text := range []string{"one", "two", "three"} {
		_, err := store.CreateTip(ctx, text, "A")
		require.NoError(t, err)
	}
	svc := NewService(store, nil)

	for i := 0; i < 10; i++ {
		before, err := store.GetStats(ctx)
		require.NoError(t, err)

		tip, err := svc.Random(ctx)
		require.NoError(t, err)

		all, err := store.ListTips(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids(all), tip.ID)

		after, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.DailyTips+1, after.DailyTips)
	}

	all, err := store.ListTips(ctx)
	require.NoError(t, err)
	total := 0
	for _, tip := range all {
		total += tip.Views
	}
	assert.Equal(t, 10, total)
}

func ids(tips []domain.Tip) []string {
	out := make([]string, len(tips))
	for i, t := range tips {
		out[i] = t.ID
	}
	return out
}
