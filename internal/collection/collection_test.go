package collection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
)

type note struct {
	ID   uint
	Text string
}

func (n note) GetID() uint { return n.ID }

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FetchAll(ctx context.Context) ([]note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]note), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, rec *note) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil {
		rec.ID = uint(args.Int(1))
	}
	return args.Error(0)
}

func (m *mockStore) Update(ctx context.Context, rec *note) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func loaded(t *testing.T, feed changefeed.Feed, items ...note) (*Collection[note], *mockStore) {
	t.Helper()
	store := new(mockStore)
	store.On("FetchAll", mock.Anything).Return(items, nil).Once()

	c := New[note]("note", "notes", store, feed)
	require.NoError(t, c.Load(context.Background()))
	return c, store
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("appends after confirmed write", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1, Text: "a"})
		store.On("Insert", mock.Anything, mock.Anything).Return(nil, 7).Once()

		got, err := c.Create(ctx, note{Text: "b"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, []note{{ID: 1, Text: "a"}, {ID: 7, Text: "b"}}, c.List())
	})

	t.Run("remote failure leaves the list unchanged", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1, Text: "a"})
		store.On("Insert", mock.Anything, mock.Anything).Return(errors.New("network down"), 0).Once()

		_, err := c.Create(ctx, note{Text: "b"})
		assert.True(t, httperr.IsRemote(err))
		assert.Len(t, c.List(), 1)
	})

	t.Run("validation runs before the store", func(t *testing.T) {
		c, store := loaded(t, nil)
		c.WithValidator(func(n note) error {
			if n.Text == "" {
				return httperr.NewValidationError("text", "Campo obrigatório.")
			}
			return nil
		})

		_, err := c.Create(ctx, note{})
		_, ok := httperr.AsValidation(err)
		assert.True(t, ok)
		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges into the matching record", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1, Text: "a"})
		store.On("Update", mock.Anything, &note{ID: 1, Text: "z"}).Return(nil).Once()

		got, err := c.Update(ctx, 1, func(n *note) error { n.Text = "z"; return nil })
		require.NoError(t, err)
		assert.Equal(t, "z", got.Text)

		cur, _ := c.Get(1)
		assert.Equal(t, "z", cur.Text)
	})

	t.Run("unknown id refetches then reports not found", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1})
		store.On("FetchAll", mock.Anything).Return([]note{{ID: 1}}, nil).Once()

		_, err := c.Update(ctx, 99, func(*note) error { return nil })
		assert.True(t, httperr.IsNotFound(err))
		store.AssertNumberOfCalls(t, "FetchAll", 2)
	})

	t.Run("record created elsewhere is found after refetch", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1})
		store.On("FetchAll", mock.Anything).Return([]note{{ID: 1}, {ID: 2, Text: "x"}}, nil).Once()
		store.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		got, err := c.Update(ctx, 2, func(n *note) error { n.Text = "y"; return nil })
		require.NoError(t, err)
		assert.Equal(t, "y", got.Text)
	})

	t.Run("record deleted remotely", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1, Text: "a"})
		store.On("Update", mock.Anything, mock.Anything).Return(fmt.Errorf("update: %w", ErrMissing)).Once()

		_, err := c.Update(ctx, 1, func(n *note) error { n.Text = "b"; return nil })
		assert.True(t, httperr.IsNotFound(err))
		assert.Empty(t, c.List())
	})

	t.Run("remote failure keeps the old value", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1, Text: "a"})
		store.On("Update", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()

		_, err := c.Update(ctx, 1, func(n *note) error { n.Text = "b"; return nil })
		assert.True(t, httperr.IsRemote(err))
		cur, _ := c.Get(1)
		assert.Equal(t, "a", cur.Text)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("guard blocks", func(t *testing.T) {
		c, store := loaded(t, nil, note{ID: 1})
		c.WithDeleteGuard(func(n note, confirmed bool) error {
			if !confirmed {
				return &httperr.DependencyError{Entity: "note", ID: n.ID, ServiceOrders: 1, Confirmable: true}
			}
			return nil
		})

		_, err := c.Delete(ctx, 1)
		de, ok := httperr.AsDependency(err)
		require.True(t, ok)
		assert.Equal(t, 1, de.Pending())
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

		store.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
		removed, err := c.Delete(ctx, 1, Confirmed(true))
		require.NoError(t, err)
		assert.Equal(t, uint(1), removed.ID)
		assert.Empty(t, c.List())
	})
}

func TestChangeFeedTriggersRefetch(t *testing.T) {
	feed := changefeed.NewMemoryFeed()
	c, store := loaded(t, feed, note{ID: 1})
	store.On("FetchAll", mock.Anything).Return([]note{{ID: 1}, {ID: 2}}, nil).Once()

	require.NoError(t, feed.Publish(context.Background(), changefeed.Event{Topic: "notes", Action: changefeed.ActionInsert, ID: 2}))
	assert.Len(t, c.List(), 2)

	c.Close()
	assert.Equal(t, 0, feed.Subscribers("notes"))

	require.NoError(t, feed.Publish(context.Background(), changefeed.Event{Topic: "notes"}))
	store.AssertNumberOfCalls(t, "FetchAll", 2)
}

func TestRefreshGivesUpWhenLocalWritesKeepWinning(t *testing.T) {
	c, store := loaded(t, nil, note{ID: 1, Text: "local"})

	// cada busca é atropelada por uma escrita local
	store.On("FetchAll", mock.Anything).Run(func(mock.Arguments) {
		c.mu.Lock()
		c.version++
		c.mu.Unlock()
	}).Return([]note{{ID: 9}}, nil).Times(refreshAttempts)

	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, ErrStale)
	var remote *httperr.RemoteError
	assert.ErrorAs(t, err, &remote)

	cur, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "local", cur.Text)
	store.AssertNumberOfCalls(t, "FetchAll", 1+refreshAttempts)
}

func TestListReturnsACopy(t *testing.T) {
	c, _ := loaded(t, nil, note{ID: 1, Text: "a"})
	list := c.List()
	list[0].Text = "changed"

	cur, _ := c.Get(1)
	assert.Equal(t, "a", cur.Text)
}
