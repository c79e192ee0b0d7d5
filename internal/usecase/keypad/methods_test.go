package keypad

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/engine"
	"keypadCalc/internal/infrastructure/memory"
	"keypadCalc/internal/mocks"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func keys(t *testing.T, labels ...string) []domain.Key {
	t.Helper()
	ks, err := domain.ParseKeys(labels)
	require.NoError(t, err)
	return ks
}

// Open — новая сессия сохраняется с чистым состоянием.
func TestOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)

	var saved domain.Session
	mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s domain.Session) error {
			saved = s
			return nil
		})

	uc := New(mockStore, nil, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Open(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.NewState(), sess.State)
	assert.Equal(t, sess.ID, saved.ID)
	assert.Equal(t, "AC", sess.State.ClearLabel())
}

func TestOpen_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	uc := New(mockStore, nil, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Open(context.Background())

	assert.Nil(t, sess)
	assert.ErrorContains(t, err, "redis down")
}

// Press — полный флоу: загрузка → движок → сохранение → брокер.
func TestPress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	var published []domain.KeyEvent
	gomock.InOrder(
		mockStore.EXPECT().Load(gomock.Any(), "s1").
			Return(&domain.Session{ID: "s1", State: domain.NewState()}, nil),
		mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s domain.Session) error {
				assert.Equal(t, "8", s.State.Display)
				return nil
			}),
		mockBroker.EXPECT().Send(gomock.Any(), []byte("s1"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, value []byte) error {
				var ev domain.KeyEvent
				require.NoError(t, json.Unmarshal(value, &ev))
				published = append(published, ev)
				return nil
			}).Times(4),
	)

	uc := New(mockStore, mockBroker, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Press(context.Background(), "s1", keys(t, "5", "+", "3", "=")...)

	require.NoError(t, err)
	assert.Equal(t, "8", sess.State.Display)
	assert.Nil(t, sess.State.Stored)
	require.Len(t, published, 4)
	assert.Equal(t, "5", published[0].Key)
	assert.Equal(t, "digit", published[0].Kind)
	assert.Equal(t, "+", published[1].Key)
	assert.Equal(t, "operator", published[1].Kind)
	assert.Equal(t, "=", published[3].Key)
	assert.Equal(t, "s1", published[3].SessionID)
}

// Ошибка брокера не ломает нажатие: состояние уже сохранено.
func TestPress_BrokerErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockStore.EXPECT().Load(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", State: domain.NewState()}, nil)
	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	// после первой ошибки остальные события не отправляются
	mockBroker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down")).Times(1)

	uc := New(mockStore, mockBroker, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Press(context.Background(), "s1", keys(t, "1", "2")...)

	require.NoError(t, err)
	assert.Equal(t, "12", sess.State.Display)
}

func TestPress_SessionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), "нет").Return(nil, domain.ErrSessionNotFound)
	// Save и брокер не вызываются

	uc := New(mockStore, nil, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Press(context.Background(), "нет", keys(t, "1")...)

	assert.Nil(t, sess)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPress_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockStore.EXPECT().Load(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", State: domain.NewState()}, nil)
	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("pg down"))

	uc := New(mockStore, mockBroker, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Press(context.Background(), "s1", keys(t, "1")...)

	assert.Nil(t, sess)
	assert.ErrorContains(t, err, "pg down")
}

// Без клавиш Press просто возвращает состояние.
func TestPress_NoKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), "s1").Return(&domain.Session{ID: "s1", State: domain.State{Display: "7"}}, nil)

	uc := New(mockStore, nil, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Press(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "7", sess.State.Display)
}

func TestPress_MaxDigits(t *testing.T) {
	store := memory.NewSessionStore(time.Minute)
	uc := New(store, nil, nil, engine.New(4), newTestLogger())
	ctx := context.Background()

	sess, err := uc.Open(ctx)
	require.NoError(t, err)

	sess, err = uc.Press(ctx, sess.ID, keys(t, "1", "2", "3", "4", "5", "6")...)
	require.NoError(t, err)
	assert.Equal(t, "1.234", sess.State.Display)
}

// Параллельные нажатия одной сессии не теряются.
func TestPress_ConcurrentSameSession(t *testing.T) {
	store := memory.NewSessionStore(time.Minute)
	uc := New(store, nil, nil, engine.Engine{}, newTestLogger())
	ctx := context.Background()

	sess, err := uc.Open(ctx)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Press(ctx, sess.ID, domain.DigitKey('1'))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, n, strings.Count(got.State.Display, "1"))
	assert.Equal(t, 0, uc.locks.len())
}

func TestClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockISessionStore(ctrl)
	mockStore.EXPECT().Delete(gomock.Any(), "s1").Return(nil)

	uc := New(mockStore, nil, nil, engine.Engine{}, newTestLogger())

	require.NoError(t, uc.Close(context.Background(), "s1"))
}

// pausingStore останавливает первый Load после чтения, пока тест не отпустит его.
type pausingStore struct {
	*memory.SessionStore
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *pausingStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.SessionStore.Load(ctx, id)
	s.once.Do(func() {
		close(s.loaded)
		<-s.release
	})
	return sess, err
}

// Close во время нажатия ждёт его завершения, и сессия не возвращается.
func TestClose_DuringPress(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewSessionStore(time.Minute)
	require.NoError(t, mem.Save(ctx, domain.Session{ID: "s1", State: domain.NewState(), UpdatedAt: time.Now()}))

	store := &pausingStore{SessionStore: mem, loaded: make(chan struct{}), release: make(chan struct{})}
	uc := New(store, nil, nil, engine.Engine{}, newTestLogger())

	pressDone := make(chan error, 1)
	go func() {
		_, err := uc.Press(ctx, "s1", domain.DigitKey('7'))
		pressDone <- err
	}()
	<-store.loaded

	closeDone := make(chan error, 1)
	go func() { closeDone <- uc.Close(ctx, "s1") }()

	select {
	case <-closeDone:
		t.Fatal("Close finished while Press was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	require.NoError(t, <-pressDone)
	require.NoError(t, <-closeDone)

	_, err := uc.Session(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, uc.locks.len())
}

// Нажатие после Close не находит сессию.
func TestPress_AfterClose(t *testing.T) {
	ctx := context.Background()
	uc := New(memory.NewSessionStore(time.Minute), nil, nil, engine.Engine{}, newTestLogger())

	sess, err := uc.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, uc.Close(ctx, sess.ID))

	_, err = uc.Press(ctx, sess.ID, domain.DigitKey('1'))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestHandleKeyEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalytics := mocks.NewMockIKeyAnalytics(ctrl)
	ev := domain.KeyEvent{SessionID: "s1", Key: "7", Kind: "digit", Timestamp: time.Now()}
	mockAnalytics.EXPECT().WriteKeyEvent(gomock.Any(), ev).Return(nil)

	// для HandleKeyEvent не нужны store и broker — передаём nil
	uc := New(nil, nil, mockAnalytics, engine.Engine{}, newTestLogger())

	require.NoError(t, uc.HandleKeyEvent(context.Background(), ev))
}

func TestHandleKeyEvent_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalytics := mocks.NewMockIKeyAnalytics(ctrl)
	mockAnalytics.EXPECT().WriteKeyEvent(gomock.Any(), gomock.Any()).Return(errors.New("click down"))

	uc := New(nil, nil, mockAnalytics, engine.Engine{}, newTestLogger())

	assert.Error(t, uc.HandleKeyEvent(context.Background(), domain.KeyEvent{SessionID: "s1"}))
}
