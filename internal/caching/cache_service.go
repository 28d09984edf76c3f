package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"leadmart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Lead caching
	GetLead(ctx context.Context, leadID uuid.UUID) (*models.Lead, error)
	SetLead(ctx context.Context, lead *models.Lead, ttl time.Duration) error
	DeleteLead(ctx context.Context, leadID uuid.UUID) error

	// Lead list caching (single unpaginated list)
	GetLeadList(ctx context.Context) ([]*models.Lead, error)
	SetLeadList(ctx context.Context, leads []*models.Lead, ttl time.Duration) error
	InvalidateLeadList(ctx context.Context) error

	// Session token revocation
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetLead(ctx context.Context, leadID uuid.UUID) (*models.Lead, error) {
	key := fmt.Sprintf("leadmart:lead:%s", leadID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var lead models.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *redisCacheService) SetLead(ctx context.Context, lead *models.Lead, ttl time.Duration) error {
	key := fmt.Sprintf("leadmart:lead:%s", lead.ID.String())
	data, err := json.Marshal(lead)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteLead(ctx context.Context, leadID uuid.UUID) error {
	key := fmt.Sprintf("leadmart:lead:%s", leadID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetLeadList(ctx context.Context) ([]*models.Lead, error) {
	data, err := r.client.Get(ctx, "leadmart:leads").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var leads []*models.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *redisCacheService) SetLeadList(ctx context.Context, leads []*models.Lead, ttl time.Duration) error {
	data, err := json.Marshal(leads)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "leadmart:leads", data, ttl).Err()
}

func (r *redisCacheService) InvalidateLeadList(ctx context.Context) error {
	return r.client.Del(ctx, "leadmart:leads").Err()
}

// RevokeToken denylists a session token id until its natural expiry.
func (r *redisCacheService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := fmt.Sprintf("leadmart:revoked:%s", tokenID)
	return r.client.Set(ctx, key, "1", ttl).Err()
}

func (r *redisCacheService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := fmt.Sprintf("leadmart:revoked:%s", tokenID)
	_, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("leadmart:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count > int64(limit), nil
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
