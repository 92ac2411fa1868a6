package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

const (
	keyPrefix  = "availability:branch:"
	scanBatch  = 100
	defaultTTL = 30 * time.Second
)

// Cache кеш рассчитанной доступности в Redis.
// Каждый диапазон "start:end" лежит в своем ключе со своим TTL.
// Запись о бронировании сбрасывает все диапазоны филиала.
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewCache создает кеш доступности
func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// cachedDay формат хранения domain.DayAvailability
type cachedDay struct {
	AMRemaining int  `json:"am_remaining"`
	PMRemaining int  `json:"pm_remaining"`
	AMCapacity  int  `json:"am_capacity"`
	PMCapacity  int  `json:"pm_capacity"`
	IsWeekend   bool `json:"is_weekend,omitempty"`
	IsHoliday   bool `json:"is_holiday,omitempty"`
	IsDisabled  bool `json:"is_disabled"`
}

// Get возвращает закешированный календарь; второй результат false при промахе
func (c *Cache) Get(ctx context.Context, branchID int64, start, end time.Time) (map[string]domain.DayAvailability, bool, error) {
	raw, err := c.rdb.Get(ctx, rangeKey(branchID, start, end)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: Get - get: %v", ErrCacheRead, err)
	}

	days, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return days, true, nil
}

// Set сохраняет календарь диапазона на ttl
func (c *Cache) Set(ctx context.Context, branchID int64, start, end time.Time, days map[string]domain.DayAvailability) error {
	payload, err := encode(days)
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, rangeKey(branchID, start, end), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - set: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate удаляет все закешированные диапазоны филиала
func (c *Cache) Invalidate(ctx context.Context, branchID int64) error {
	if err := c.deleteMatching(ctx, branchKey(branchID)+":*"); err != nil {
		return fmt.Errorf("Invalidate - %w", err)
	}
	return nil
}

// InvalidateAll удаляет кеш всех филиалов (общие праздники)
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := c.deleteMatching(ctx, keyPrefix+"*"); err != nil {
		return fmt.Errorf("InvalidateAll - %w", err)
	}
	return nil
}

func (c *Cache) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%w: scan: %v", ErrCacheRead, err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: del: %v", ErrCacheWrite, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func branchKey(branchID int64) string {
	return keyPrefix + strconv.FormatInt(branchID, 10)
}

func rangeKey(branchID int64, start, end time.Time) string {
	return branchKey(branchID) + ":" + domain.DateKey(start) + ":" + domain.DateKey(end)
}

func encode(days map[string]domain.DayAvailability) ([]byte, error) {
	out := make(map[string]cachedDay, len(days))
	for k, d := range days {
		out[k] = cachedDay(d)
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}
	return payload, nil
}

func decode(raw []byte) (map[string]domain.DayAvailability, error) {
	var in map[string]cachedDay
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	days := make(map[string]domain.DayAvailability, len(in))
	for k, d := range in {
		days[k] = domain.DayAvailability(d)
	}
	return days, nil
}
