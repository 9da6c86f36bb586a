// internal/quiz/store.go
package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/metrics"
	"bizpath-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrQuizNotFound = errors.New("QUIZ_NOT_FOUND")
	ErrNoAnswers    = errors.New("QUIZ_VALIDATION_FAILED")
)

const cacheName = "quiz-response"

// StoredResponse is a persisted submission. Answers are immutable once stored.
type StoredResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId,omitempty"`
	Email     string              `json:"email,omitempty"`
	Phone     string              `json:"phone,omitempty"`
	Answers   models.QuizResponse `json:"answers"`
	CreatedAt time.Time           `json:"createdAt"`
}

type Submission struct {
	UserID  string
	Email   string
	Phone   string
	Answers models.QuizResponse
}

// Reader is what workers need to resolve a quizResponseId.
type Reader interface {
	Get(ctx context.Context, id string) (*StoredResponse, error)
}

// Store persists quiz responses in Postgres with a read-through Redis cache. A nil
// redis client disables caching.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "quiz-store"}),
	}
}

func cacheKey(id string) string {
	return "quiz:response:" + id
}

// Save assigns a new id and inserts the submission.
func (s *Store) Save(ctx context.Context, sub Submission) (*StoredResponse, error) {
	if sub.Answers.AnsweredCount() == 0 {
		return nil, fmt.Errorf("%w: no answers supplied", ErrNoAnswers)
	}

	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	stored := &StoredResponse{
		ID:        uuid.New().String(),
		UserID:    strings.TrimSpace(sub.UserID),
		Email:     strings.TrimSpace(sub.Email),
		Phone:     strings.TrimSpace(sub.Phone),
		Answers:   sub.Answers,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quiz_responses (id, user_id, email, phone, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		stored.ID, nullable(stored.UserID), nullable(stored.Email), nullable(stored.Phone), answers, stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert quiz response: %w", err)
	}

	s.cache(ctx, stored)

	s.logger.Info("quiz response stored", map[string]interface{}{
		"quizResponseId": stored.ID,
		"answered":       sub.Answers.AnsweredCount(),
	})
	return stored, nil
}

// Get returns the stored response, consulting the cache first.
func (s *Store) Get(ctx context.Context, id string) (*StoredResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed id %q", ErrQuizNotFound, id)
	}

	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey(id)).Result(); err == nil {
			var stored StoredResponse
			if err := json.Unmarshal([]byte(val), &stored); err == nil {
				metrics.CacheHit(cacheName)
				return &stored, nil
			}
		}
		metrics.CacheMiss(cacheName)
	}

	stored, err := s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, phone, answers, created_at
		FROM quiz_responses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, id)
		}
		return nil, fmt.Errorf("load quiz response %s: %w", id, err)
	}

	s.cache(ctx, stored)
	return stored, nil
}

// LatestForUser returns the newest submission of userID.
func (s *Store) LatestForUser(ctx context.Context, userID string) (*StoredResponse, error) {
	stored, err := s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, phone, answers, created_at
		FROM quiz_responses WHERE user_id = $1
		ORDER BY created_at DESC LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no submission for user %s", ErrQuizNotFound, userID)
		}
		return nil, fmt.Errorf("load latest quiz response: %w", err)
	}
	return stored, nil
}

func (s *Store) scanOne(row *sql.Row) (*StoredResponse, error) {
	var (
		stored               StoredResponse
		userID, email, phone sql.NullString
		answers              []byte
	)
	if err := row.Scan(&stored.ID, &userID, &email, &phone, &answers, &stored.CreatedAt); err != nil {
		return nil, err
	}
	stored.UserID, stored.Email, stored.Phone = userID.String, email.String, phone.String

	if err := json.Unmarshal(answers, &stored.Answers); err != nil {
		s.logger.Warn("stored answers are not valid JSON, scoring with defaults", map[string]interface{}{
			"quizResponseId": stored.ID,
			"error":          err,
		})
		stored.Answers = models.QuizResponse{}
	}
	return &stored, nil
}

func (s *Store) cache(ctx context.Context, stored *StoredResponse) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(stored.ID), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("quiz cache write failed", map[string]interface{}{
			"quizResponseId": stored.ID,
			"error":          err,
		})
	}
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// Resolve picks the inline answers when present, otherwise loads id from r.
func Resolve(ctx context.Context, r Reader, inline *models.QuizResponse, id string) (*models.QuizResponse, *StoredResponse, error) {
	if inline != nil {
		return inline, nil, nil
	}
	if id == "" {
		return nil, nil, fmt.Errorf("%w: quizResponse or quizResponseId is required", ErrNoAnswers)
	}
	if r == nil {
		return nil, nil, fmt.Errorf("%w: no store configured for id %s", ErrQuizNotFound, id)
	}

	stored, err := r.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &stored.Answers, stored, nil
}
