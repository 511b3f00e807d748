package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%s"
	ListingKeyPrefix  = "listing:%s"
	RoommateKeyPrefix = "roommate:%s"
)

const (
	UserTTL     = 5 * time.Minute
	ListingTTL  = 2 * time.Minute
	RoommateTTL = 2 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ListingKey(listingID string) string {
	return fmt.Sprintf(ListingKeyPrefix, listingID)
}

func RoommateKey(profileID string) string {
	return fmt.Sprintf(RoommateKeyPrefix, profileID)
}

// GetJSON loads key into dest. Returns false on miss, cache disabled
// or any Redis error; reads never fail a request.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON best-effort stores value under key with the given TTL.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateListing(ctx context.Context, listingID string) {
	Invalidate(ctx, ListingKey(listingID))
}

func InvalidateRoommate(ctx context.Context, profileID string) {
	Invalidate(ctx, RoommateKey(profileID))
}
