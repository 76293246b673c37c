// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/projektikatalog/jeftinoRS/internal/config"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

// Key suffixes for the three independently-serialized state blobs.
const (
	blobItems      = "items"
	blobPromoItems = "promo_items"
	blobActive     = "active_promotion"
)

// Service owns cart state persistence and serializes mutations per
// session. Redis read/write failures are swallowed: the engine proceeds
// on in-memory defaults and the session degrades to best-effort
// persistence rather than failing the request.
type Service struct {
	redisClient *redis.Client
	config      *config.Config
	log         *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		redisClient: redisClient,
		config:      cfg,
		log:         log,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

func blobKey(sessionID, suffix string) string {
	return fmt.Sprintf("cart:%s:%s", sessionID, suffix)
}

// Load reads the session's state from Redis. Missing or corrupted blobs
// default to empty; Load never fails.
func (s *Service) Load(ctx context.Context, sessionID string) *State {
	state := NewState()

	s.loadBlob(ctx, sessionID, blobItems, &state.Items)
	s.loadBlob(ctx, sessionID, blobPromoItems, &state.PromoItems)

	var active promotion.Promotion
	if s.loadBlob(ctx, sessionID, blobActive, &active) && active.ID != "" {
		state.ActivePromotion = &active
	}

	if state.Items == nil {
		state.Items = []Line{}
	}
	if state.PromoItems == nil {
		state.PromoItems = []Line{}
	}
	return state
}

func (s *Service) loadBlob(ctx context.Context, sessionID, suffix string, dest interface{}) bool {
	data, err := s.redisClient.Get(ctx, blobKey(sessionID, suffix)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).
			Warn("cart state read failed, using empty default")
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).
			Warn("corrupted cart state blob, using empty default")
		return false
	}
	return true
}

// Save writes all three state blobs back to Redis. Write failures are
// logged, never surfaced.
func (s *Service) Save(ctx context.Context, sessionID string, state *State) {
	s.saveBlob(ctx, sessionID, blobItems, state.Items)
	s.saveBlob(ctx, sessionID, blobPromoItems, state.PromoItems)
	if state.ActivePromotion != nil {
		s.saveBlob(ctx, sessionID, blobActive, state.ActivePromotion)
	} else {
		if err := s.redisClient.Del(ctx, blobKey(sessionID, blobActive)).Err(); err != nil {
			s.log.WithError(err).WithField("session_id", sessionID).
				Warn("cart state delete failed")
		}
	}
}

func (s *Service) saveBlob(ctx context.Context, sessionID, suffix string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).
			Warn("cart state marshal failed")
		return
	}
	err = s.redisClient.Set(ctx, blobKey(sessionID, suffix), data, s.config.Cart.SessionTTL).Err()
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).
			Warn("cart state write failed")
	}
}

// Clear removes every state blob for the session.
func (s *Service) Clear(ctx context.Context, sessionID string) {
	keys := []string{
		blobKey(sessionID, blobItems),
		blobKey(sessionID, blobPromoItems),
		blobKey(sessionID, blobActive),
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).
			Warn("cart state clear failed")
	}
}

// Mutate loads the session's state, applies fn under the session lock
// and persists the result. Mutations on one session never interleave.
func (s *Service) Mutate(ctx context.Context, sessionID string, fn func(*State) error) (*State, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state := s.Load(ctx, sessionID)
	if err := fn(state); err != nil {
		return nil, err
	}
	s.Save(ctx, sessionID, state)
	return state, nil
}
