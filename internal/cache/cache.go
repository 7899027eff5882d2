// Package cache is a thin read-through layer over Redis for the endpoints
// that are read far more often than written: the transaction list and the
// last expense analysis. A nil *Cache is valid and disables caching.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/models"
)

const (
	transactionsTTL = 60 * time.Second
	analysisTTL     = 10 * time.Minute
)

// Cache wraps a Redis client
type Cache struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects to Redis; addr == "" disables caching
func New(addr string, log *logrus.Logger) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client, log: log}, nil
}

// GetTransactions returns the cached transaction list for a user, if any
func (c *Cache) GetTransactions(ctx context.Context, userID int64) ([]models.Transaction, bool) {
	if c == nil {
		return nil, false
	}
	cached, err := c.client.Get(ctx, transactionsKey(userID)).Result()
	if err != nil {
		return nil, false
	}
	var transactions []models.Transaction
	if err := json.Unmarshal([]byte(cached), &transactions); err != nil {
		return nil, false
	}
	return transactions, true
}

// SetTransactions caches a user's transaction list
func (c *Cache) SetTransactions(ctx context.Context, userID int64, transactions []models.Transaction) {
	if c == nil {
		return
	}
	data, err := json.Marshal(transactions)
	if err != nil {
		return
	}
	if err := c.client.SetEx(ctx, transactionsKey(userID), data, transactionsTTL).Err(); err != nil {
		c.log.Warnf("Failed to cache transactions for user %d: %v", userID, err)
	}
}

// GetLastAnalysis returns the cached last analysis record, if any
func (c *Cache) GetLastAnalysis(ctx context.Context, userID int64) (*models.AnalysisRecord, bool) {
	if c == nil {
		return nil, false
	}
	cached, err := c.client.Get(ctx, analysisKey(userID)).Result()
	if err != nil {
		return nil, false
	}
	var rec models.AnalysisRecord
	if err := json.Unmarshal([]byte(cached), &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// SetLastAnalysis caches the last analysis record
func (c *Cache) SetLastAnalysis(ctx context.Context, userID int64, rec *models.AnalysisRecord) {
	if c == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.SetEx(ctx, analysisKey(userID), data, analysisTTL).Err(); err != nil {
		c.log.Warnf("Failed to cache analysis for user %d: %v", userID, err)
	}
}

// InvalidateTransactions drops the cached transaction list after a write
func (c *Cache) InvalidateTransactions(ctx context.Context, userID int64) {
	if c == nil {
		return
	}
	c.client.Del(ctx, transactionsKey(userID))
}

// InvalidateAnalysis drops the cached analysis after a new record is saved
func (c *Cache) InvalidateAnalysis(ctx context.Context, userID int64) {
	if c == nil {
		return
	}
	c.client.Del(ctx, analysisKey(userID))
}

func transactionsKey(userID int64) string {
	return fmt.Sprintf("transactions:%d", userID)
}

func analysisKey(userID int64) string {
	return fmt.Sprintf("analysis:last:%d", userID)
}
