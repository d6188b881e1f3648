package listcache

import (
	"context"
	"fmt"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Cache keeps one entry per resource and query. The keys of a resource are tracked in a set so
// they can all be dropped after a mutation. Concurrent writers are last-write-wins.
type Cache struct {
	redisRepo contracts.RedisRepository
	publisher contracts.InvalidationPublisher
	ttl       time.Duration
	inFlight  sync.WaitGroup
	Log       *zap.Logger
}

// NewListCache accepts a nil publisher when broadcasting is disabled.
func NewListCache(redisRepo contracts.RedisRepository, publisher contracts.InvalidationPublisher, internalConfig *config.InternalConfig, logger *zap.Logger) *Cache {
	return &Cache{
		redisRepo: redisRepo,
		publisher: publisher,
		ttl:       internalConfig.Cache.ListTTL,
		Log:       logger,
	}
}

var _ contracts.ListCache = (*Cache)(nil)

func (c *Cache) Get(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, bool, error) {
	raw, err := c.redisRepo.Get(ctx, c.key(resource, query))
	if err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}

	var result responses.ListResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.Log.Warn("listCache.Get dropping unreadable entry",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
		return nil, false, nil
	}
	return &result, true, nil
}

func (c *Cache) Put(ctx context.Context, resource string, query requests.ListQuery, result *responses.ListResult) error {
	key := c.key(resource, query)
	if err := c.redisRepo.Set(ctx, key, result, c.ttl); err != nil {
		return err
	}
	return c.redisRepo.AddToSet(ctx, c.setKey(resource), key)
}

// Invalidate never fails the caller; the mutation it follows already succeeded. The local purge
// is done before returning and the broadcast runs in the background.
func (c *Cache) Invalidate(ctx context.Context, resource string, entityIDs ...string) {
	requestID := utils.GetRequestID(ctx)
	if err := c.Purge(ctx, resource); err != nil {
		c.Log.Error("listCache.Invalidate error purging cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
	}

	if c.publisher == nil {
		return
	}
	event := models.ListInvalidation{
		Resource:  resource,
		EntityIDs: entityIDs,
		RequestID: requestID,
		At:        time.Now().UTC(),
	}
	publishCtx := context.WithoutCancel(ctx)

	c.inFlight.Add(1)
	go func() {
		defer c.inFlight.Done()
		ctx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		defer cancel()
		if err := c.publisher.Publish(ctx, event); err != nil {
			c.Log.Error("listCache.Invalidate error publishing invalidation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceKey, resource),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every background broadcast has returned.
func (c *Cache) Wait() {
	c.inFlight.Wait()
}

// Purge drops every tracked page of resource.
func (c *Cache) Purge(ctx context.Context, resource string) error {
	setKey := c.setKey(resource)
	keys, err := c.redisRepo.GetSetMembers(ctx, setKey)
	if err != nil {
		return err
	}
	return c.redisRepo.Delete(ctx, append(keys, setKey)...)
}

func (c *Cache) key(resource string, query requests.ListQuery) string {
	values := url.Values{}
	values.Set(constvars.QueryParamPage, strconv.Itoa(query.Page))
	values.Set(constvars.QueryParamLimit, strconv.Itoa(query.Limit))
	values.Set(constvars.QueryParamSort, query.Sort)
	values.Set(constvars.QueryParamSearchTerm, query.SearchTerm)
	return fmt.Sprintf(constvars.RedisKeyListCacheFormat, resource, values.Encode())
}

func (c *Cache) setKey(resource string) string {
	return fmt.Sprintf(constvars.RedisKeyListCacheSetFormat, resource)
}
