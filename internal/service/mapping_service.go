package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crm-import-web/internal/mapping"

	"github.com/redis/go-redis/v9"
)

// ErrNoMapping is returned when a session has no stored mapping yet.
var ErrNoMapping = errors.New("no mapping stored for session")

// MappingService keeps the working mapping for each import session in
// Redis under a TTL. The mapping engine itself is stateless; this is the
// only place session mapping state lives, and it is discarded when the
// session changes object or completes.
type MappingService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMappingService(redisClient *redis.Client, ttl time.Duration) *MappingService {
	return &MappingService{
		redis: redisClient,
		ttl:   ttl,
	}
}

func mappingKey(sessionCode string) string {
	return fmt.Sprintf("import:mapping:%s", sessionCode)
}

// AutoMatch seeds a fresh mapping for the session from the engine's
// matcher, stores it, and returns it with its validation report.
func (s *MappingService) AutoMatch(ctx context.Context, sessionCode string, columns []string, fields []mapping.Field) (mapping.Mapping, mapping.Report, error) {
	m := mapping.AutoMatch(columns, fields)
	if err := s.store(ctx, sessionCode, m); err != nil {
		return mapping.Mapping{}, mapping.Report{}, err
	}
	return m, mapping.Validate(m, fields), nil
}

// Get returns the stored mapping and a freshly computed report.
func (s *MappingService) Get(ctx context.Context, sessionCode string, fields []mapping.Field) (mapping.Mapping, mapping.Report, error) {
	m, err := s.load(ctx, sessionCode)
	if err != nil {
		return mapping.Mapping{}, mapping.Report{}, err
	}
	return m, mapping.Validate(m, fields), nil
}

// UpdateEntry replaces exactly one column's assignment (user edit), then
// revalidates and stores the result. An empty fieldKey unassigns the
// column. User edits always carry AutoMatched=false.
func (s *MappingService) UpdateEntry(ctx context.Context, sessionCode, column, fieldKey string, fields []mapping.Field) (mapping.Mapping, mapping.Report, error) {
	m, err := s.load(ctx, sessionCode)
	if err != nil {
		return mapping.Mapping{}, mapping.Report{}, err
	}

	m.Set(column, fieldKey, false)
	if err := s.store(ctx, sessionCode, m); err != nil {
		return mapping.Mapping{}, mapping.Report{}, err
	}
	return m, mapping.Validate(m, fields), nil
}

// Delete discards the session's mapping (object change or completion).
func (s *MappingService) Delete(ctx context.Context, sessionCode string) error {
	return s.redis.Del(ctx, mappingKey(sessionCode)).Err()
}

func (s *MappingService) store(ctx context.Context, sessionCode string, m mapping.Mapping) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	if err := s.redis.Set(ctx, mappingKey(sessionCode), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store mapping: %w", err)
	}
	return nil
}

func (s *MappingService) load(ctx context.Context, sessionCode string) (mapping.Mapping, error) {
	data, err := s.redis.Get(ctx, mappingKey(sessionCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return mapping.Mapping{}, ErrNoMapping
	}
	if err != nil {
		return mapping.Mapping{}, fmt.Errorf("failed to load mapping: %w", err)
	}

	var m mapping.Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return mapping.Mapping{}, fmt.Errorf("failed to decode mapping: %w", err)
	}
	return m, nil
}
