package cache

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	persistence "github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BSCPerBlockTime bounds how stale a cached response can get; the ledger
// only changes when a new block lands.
const BSCPerBlockTime = 20 * time.Second

// Middleware caches GET and POST responses keyed by path plus request body,
// so the same list query served twice inside one block window hits memory.
func Middleware() gin.HandlerFunc {
	store := persistence.NewMemoryStore(BSCPerBlockTime)

	return cache.Cache(store, BSCPerBlockTime, cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		b, k := keyGenerator(c)
		return b, cache.Strategy{
			CacheKey:      k,
			CacheDuration: BSCPerBlockTime,
		}
	}))
}

func keyGenerator(c *gin.Context) (t bool, key string) {
	_key := c.Request.URL.Path
	defer func() {
		key = uuid.NewMD5(uuid.NameSpaceURL, []byte(_key)).String()
	}()
	if c.Request.Method == http.MethodPost {
		ct := c.Request.Header.Get("Content-Type")
		if strings.Contains(ct, "application/json") {
			data, _ := io.ReadAll(c.Request.Body)
			defer c.Request.Body.Close()
			c.Request.Body = io.NopCloser(bytes.NewBuffer(data))
			_key += string(data)
		} else if strings.Contains(ct, "application/x-www-form-urlencoded") {
			if c.Request.ParseForm() != nil {
				return false, key
			}
			_key += c.Request.PostForm.Encode()
		}
	}

	return true, key
}
