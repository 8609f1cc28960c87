package raster

import (
	"fmt"
	"math"
	"sync"
)

// kernelKey identifies one generated kernel. The dimensions in the key
// are the resolved ones, after defaulting, so GaussianKernel(1, 0, 0)
// and GaussianKernel(1, 7, 7) share an entry.
type kernelKey struct {
	stdDev        float64
	width, height int
}

// KernelCache memoizes generated gaussian kernels across repeated blur
// calls. Entries are immutable once inserted and never evicted: the key
// space is bounded by the number of distinct blur configurations the
// host uses. A hit returns a fresh copy, so callers may mutate their
// kernel (normalize it, typically) without corrupting the cache.
//
// The cache is safe for concurrent use.
type KernelCache struct {
	mu      sync.RWMutex
	kernels map[kernelKey]*Gray
}

// NewKernelCache returns an empty cache. Hosts that want isolated
// lifetimes (tests, mostly) construct their own; everything else can
// go through DefaultKernelCache.
func NewKernelCache() *KernelCache {
	return &KernelCache{kernels: make(map[kernelKey]*Gray)}
}

// DefaultKernelCache is the process-wide cache used by the package
// level GaussianKernel and by Gray.GaussianBlur.
var DefaultKernelCache = NewKernelCache()

// GaussianKernel returns a gaussian kernel for the given standard
// deviation, generating and caching it on first use. Width and height
// that are not positive default to the smallest odd integer >=
// 6*stdDev, covering three standard deviations either side of the
// center. Explicit even dimensions panic, since such a kernel could
// never be convolved.
//
// The kernel holds the raw gaussian density
//
//	exp(-(dx^2+dy^2) / (2*stdDev^2)) / (2*pi*stdDev^2)
//
// around the center (width/2, height/2) and is NOT normalized to sum
// to 1; callers that need a brightness-preserving kernel normalize
// their copy. A stdDev <= 0 yields the 1x1 identity kernel.
func (c *KernelCache) GaussianKernel(stdDev float64, width, height int) *Gray {
	if width <= 0 {
		width = defaultKernelSize(stdDev)
	}
	if height <= 0 {
		height = defaultKernelSize(stdDev)
	}
	if width%2 == 0 || height%2 == 0 {
		panic(fmt.Sprintf("raster: gaussian kernel dimensions must be odd, got %dx%d", width, height))
	}

	key := kernelKey{stdDev: stdDev, width: width, height: height}
	c.mu.RLock()
	k, ok := c.kernels[key]
	c.mu.RUnlock()
	if ok {
		return k.Copy()
	}

	k = gaussian(stdDev, width, height)
	c.mu.Lock()
	c.kernels[key] = k.Copy()
	c.mu.Unlock()
	return k
}

// GaussianKernel is the DefaultKernelCache convenience form.
func GaussianKernel(stdDev float64, width, height int) *Gray {
	return DefaultKernelCache.GaussianKernel(stdDev, width, height)
}

func defaultKernelSize(stdDev float64) int {
	n := int(math.Ceil(6 * stdDev))
	if n%2 == 0 {
		n++
	}
	return max(n, 1)
}

func gaussian(stdDev float64, width, height int) *Gray {
	k := NewGray(width, height)
	if stdDev <= 0 {
		k.Pix[k.PixelIndex(width/2, height/2)] = 1
		return k
	}

	factor := 1 / (2 * math.Pi * stdDev * stdDev)
	cx, cy := width/2, height/2
	k.MapSelf(func(_ float32, x, y, _ int) float32 {
		dx, dy := float64(x-cx), float64(y-cy)
		return float32(factor * math.Exp(-(dx*dx+dy*dy)/(2*stdDev*stdDev)))
	})
	return k
}
