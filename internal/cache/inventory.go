package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CompanyKeyPrefix  = "company:%d"
	PlatformStatsKey  = "stats:platform"
	OAuthStatePrefix  = "oauth_state:%s"
	CompanyListPrefix = "companies:%d:%d:%s"
)

const (
	CompanyTTL       = 10 * time.Minute
	PlatformStatsTTL = time.Minute
	CompanyListTTL   = 5 * time.Minute
	OAuthStateTTL    = 10 * time.Minute
)

func CompanyKey(companyID uint) string {
	return fmt.Sprintf(CompanyKeyPrefix, companyID)
}

func CompanyListKey(limit, offset int, search string) string {
	return fmt.Sprintf(CompanyListPrefix, limit, offset, search)
}

func OAuthStateKey(state string) string {
	return fmt.Sprintf(OAuthStatePrefix, state)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCompany(ctx context.Context, companyID uint) {
	Invalidate(ctx, CompanyKey(companyID))
}

// InvalidateCompanyLists drops all cached company list pages.
func InvalidateCompanyLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "companies:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
