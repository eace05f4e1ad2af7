// terrain/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"io"
	gomath "math"
	"time"

	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/util"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Points are cached at 1e-5 degree resolution (about 1m).
const cacheResolution = 1e5

type cacheKey [2]int64 // lat, lon

func makeCacheKey(p math.Point2LL) cacheKey {
	return cacheKey{int64(gomath.Round(p.Latitude() * cacheResolution)),
		int64(gomath.Round(p.Longitude() * cacheResolution))}
}

// Cache memoizes elevations that were returned by the elevation service.
// It is safe for concurrent use and a nil *Cache is a valid cache that
// holds nothing.
type Cache struct {
	lru *expirable.LRU[cacheKey, float64]
}

// NewCache returns a cache holding up to size entries (unbounded if size
// is 0) that expire after ttl (never if ttl is 0).
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[cacheKey, float64](size, nil, ttl)}
}

func (c *Cache) Get(p math.Point2LL) (float64, bool) {
	if c == nil {
		return 0, false
	}
	return c.lru.Get(makeCacheKey(p))
}

func (c *Cache) Add(p math.Point2LL, elev float64) {
	if c != nil {
		c.lru.Add(makeCacheKey(p), elev)
	}
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheFile stores the entries in columns; the coordinates are delta
// encoded since successive entries are usually nearby points along a
// route.
type cacheFile struct {
	Version    int       `msgpack:"version"`
	Lats       []int64   `msgpack:"lats"`
	Lons       []int64   `msgpack:"lons"`
	Elevations []float64 `msgpack:"elevations"`
}

const cacheFileVersion = 1

func (c *Cache) entries() cacheFile {
	var lats, lons []int64
	var elev []float64
	// Keys are returned oldest first, so reloading preserves recency.
	for _, k := range c.lru.Keys() {
		if e, ok := c.lru.Peek(k); ok {
			lats = append(lats, k[0])
			lons = append(lons, k[1])
			elev = append(elev, e)
		}
	}
	return cacheFile{
		Version:    cacheFileVersion,
		Lats:       util.DeltaEncode(lats),
		Lons:       util.DeltaEncode(lons),
		Elevations: elev,
	}
}

func (c *Cache) add(cf cacheFile) error {
	if cf.Version != cacheFileVersion {
		return nil
	}
	if len(cf.Lats) != len(cf.Elevations) || len(cf.Lons) != len(cf.Elevations) {
		return ErrCorruptCache
	}

	lats, lons := util.DeltaDecode(cf.Lats), util.DeltaDecode(cf.Lons)
	for i, e := range cf.Elevations {
		c.lru.Add(cacheKey{lats[i], lons[i]}, e)
	}
	return nil
}

// Save writes the cache's entries to w.
func (c *Cache) Save(w io.Writer) error {
	return util.EncodeCompressed(w, c.entries())
}

// Load adds the entries previously written by Save to the cache. Entries
// from an incompatible version of the format are ignored.
func (c *Cache) Load(r io.Reader) error {
	var cf cacheFile
	if err := util.DecodeCompressed(r, &cf); err != nil {
		return err
	}
	return c.add(cf)
}

func (c *Cache) SaveFile(path string) error {
	return util.StoreObject(path, c.entries())
}

func (c *Cache) LoadFile(path string) error {
	var cf cacheFile
	if err := util.RetrieveObject(path, &cf); err != nil {
		return err
	}
	return c.add(cf)
}
