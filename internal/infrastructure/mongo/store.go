package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

var _ ports.ISessionStore = (*SessionStore)(nil)

// sessionDoc — документ в коллекции сессий. BSON хранит ±Inf и NaN как обычные double,
// поэтому операнд лежит числом.
type sessionDoc struct {
	ID        string    `bson:"_id"`
	Display   string    `bson:"display"`
	Stored    *float64  `bson:"stored,omitempty"`
	Op        *string   `bson:"op,omitempty"`
	Reset     bool      `bson:"reset"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toDoc(s domain.Session) sessionDoc {
	d := sessionDoc{
		ID:        s.ID,
		Display:   s.State.Display,
		Stored:    s.State.Stored,
		Reset:     s.State.Reset,
		UpdatedAt: s.UpdatedAt,
	}
	if s.State.Op != nil {
		op := string(*s.State.Op)
		d.Op = &op
	}
	return d
}

func (d sessionDoc) toSession() domain.Session {
	st := domain.State{Display: d.Display, Stored: d.Stored, Reset: d.Reset}
	if d.Op != nil {
		op := domain.Operator(*d.Op)
		st.Op = &op
	}
	if st.Display == "" {
		st.Display = domain.ZeroDisplay
	}
	return domain.Session{ID: d.ID, State: st, UpdatedAt: d.UpdatedAt}
}

// SessionStore реализует ports.ISessionStore для MongoDB. Истечение — TTL-индекс по updated_at
// (его создаёт EnsureIndexes); монга удаляет документы фоново, поэтому Load дополнительно проверяет срок.
type SessionStore struct {
	client *Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewSessionStore возвращает хранилище сессий.
func NewSessionStore(client *Client, ttl time.Duration, log *slog.Logger) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, log: log}
}

// EnsureIndexes создаёт TTL-индекс. Вызови один раз при старте приложения.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	_, err := s.client.Coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.ttl.Seconds())),
	})
	return err
}

// Load возвращает сессию по _id.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	var doc sessionDoc
	err := s.client.Coll().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		s.log.Debug("Load failed", "session_id", id, "error", err)
		return nil, err
	}
	if s.ttl > 0 && time.Since(doc.UpdatedAt) > s.ttl {
		return nil, domain.ErrSessionNotFound
	}
	sess := doc.toSession()
	return &sess, nil
}

// Save заменяет документ сессии (upsert).
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	_, err := s.client.Coll().ReplaceOne(ctx,
		bson.M{"_id": sess.ID},
		toDoc(sess),
		options.Replace().SetUpsert(true))
	if err != nil {
		s.log.Debug("Save failed", "session_id", sess.ID, "error", err)
		return err
	}
	return nil
}

// Delete удаляет документ сессии.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Ping проверяет доступность БД.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
