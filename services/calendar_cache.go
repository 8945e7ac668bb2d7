package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys: avail:calendar:{propertyID}:{YYYY-MM} -> JSON []DayOccupancy
const calendarKeyFormat = "avail:calendar:%d:%04d-%02d"

var calendarTTL = 5 * time.Minute

// CalendarCache is an optional redis read model for the month calendar
// screens. It is a display hint only: every reservation write invalidates
// the property's entries, and the conflict guard never reads it.
//
// A nil *CalendarCache is valid and disables caching entirely.
type CalendarCache struct {
	rdb *redis.Client
}

// NewCalendarCache returns nil when addr is empty.
func NewCalendarCache(addr string) *CalendarCache {
	if addr == "" {
		return nil
	}
	return &CalendarCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *CalendarCache) Get(ctx context.Context, propertyID uint, year int, month time.Month) ([]DayOccupancy, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(calendarKeyFormat, propertyID, year, int(month))).Result()
	if err != nil {
		return nil, false
	}
	var days []DayOccupancy
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *CalendarCache) Set(ctx context.Context, propertyID uint, year int, month time.Month, days []DayOccupancy) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(calendarKeyFormat, propertyID, year, int(month)), raw, calendarTTL).Err(); err != nil {
		log.Printf("warning: calendar cache set failed: %v", err)
	}
}

// Invalidate drops every cached month for the property. Called after each
// reservation write; best effort.
func (c *CalendarCache) Invalidate(ctx context.Context, propertyID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("avail:calendar:%d:*", propertyID)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("warning: calendar cache invalidate failed: %v", err)
	}
}
