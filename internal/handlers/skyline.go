package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogcache"
	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
)

// ============================================================================
// Skyline Search Endpoints
// ============================================================================

// SolveLocation is a planar coordinate in the solve request/response wire
// format.
type SolveLocation struct {
	X float64 `json:"x" binding:"required" jsonschema:"required"`
	Y float64 `json:"y" binding:"required" jsonschema:"required"`
}

// SolveListItem is one requested (product, quantity) pair.
type SolveListItem struct {
	ProductID string `json:"productId" binding:"required" jsonschema:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1" jsonschema:"required,minimum=1"`
}

// SolveRequest is the wire shape of a skyline solve query.
type SolveRequest struct {
	Region              string           `json:"region" binding:"required" jsonschema:"required"`
	ShoppingList        []*SolveListItem `json:"shoppingList" binding:"required,min=0,max=200" jsonschema:"required,maxItems=200"`
	Shopper             SolveLocation    `json:"shopper" binding:"required" jsonschema:"required"`
	Customer            SolveLocation    `json:"customer" binding:"required" jsonschema:"required"`
	StagnationThreshold int              `json:"stagnationThreshold,omitempty" jsonschema:"minimum=1"`
	Priority            uint             `json:"priority,omitempty"`
}

// SolveRoute is one skyline entry in the response.
type SolveRoute struct {
	Stores       []string `json:"stores" jsonschema:"required"`
	ShoppingTime float64  `json:"shoppingTime" jsonschema:"required"`
	ShoppingCost float64  `json:"shoppingCost" jsonschema:"required"`
}

// SolveResponse is the wire shape of a skyline solve result.
type SolveResponse struct {
	Routes           []*SolveRoute `json:"routes" jsonschema:"required"`
	LowerBound       float64       `json:"lowerBound" jsonschema:"required"`
	PreSearchElapsed string        `json:"preSearchElapsed" jsonschema:"required"`
}

const defaultStagnationThreshold = 50

// Global cache instance, wired by InitSkylineHandlers during application
// startup (mirrors optimize.go's InitOptimizers package-global pattern).
var catalogueCache *catalogcache.Store

// InitSkylineHandlers wires the catalogue cache the solve/warmup/refresh
// handlers operate against.
func InitSkylineHandlers(cache *catalogcache.Store) {
	catalogueCache = cache
}

// SolveSkyline handles a skyline search request.
// POST /internal/skyline/solve
func SolveSkyline(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalogue, ok := catalogueCache.Get(req.Region)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalogue not yet loaded for region: " + req.Region})
		return
	}

	items := make(map[skyline.ProductID]int, len(req.ShoppingList))
	for _, item := range req.ShoppingList {
		items[skyline.ProductID(item.ProductID)] = item.Quantity
	}
	list := &skyline.ShoppingList{Items: items, Priority: req.Priority}

	stagnation := req.StagnationThreshold
	if stagnation <= 0 {
		stagnation = defaultStagnationThreshold
	}

	shopper := skyline.Location{X: req.Shopper.X, Y: req.Shopper.Y}
	customer := skyline.Location{X: req.Customer.X, Y: req.Customer.Y}

	result, err := skyline.SolveSkyline(catalogue, list, shopper, customer, stagnation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	routes := make([]*SolveRoute, 0, len(result.Routes))
	for _, r := range result.Routes {
		stores := make([]string, len(r.Stores))
		for i, s := range r.Stores {
			stores[i] = string(s)
		}
		routes = append(routes, &SolveRoute{Stores: stores, ShoppingTime: r.ShoppingTime, ShoppingCost: r.ShoppingCost})
	}

	c.JSON(http.StatusOK, SolveResponse{
		Routes:           routes,
		LowerBound:       result.LowerBound,
		PreSearchElapsed: result.PreSearchElapsed.String(),
	})
}

// WarmupRequest names the regions to warm.
type WarmupRequest struct {
	Regions []string `json:"regions" binding:"required,min=1" jsonschema:"required"`
}

// WarmupCatalogue triggers a bounded-concurrency load of the named regions.
// POST /internal/skyline/cache/warmup
func WarmupCatalogue(c *gin.Context) {
	var req WarmupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := catalogueCache.Warmup(c.Request.Context(), req.Regions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "warmed", "regions": req.Regions})
}

// RefreshCatalogue reloads a single region's catalogue on demand.
// POST /internal/skyline/cache/refresh/:region
func RefreshCatalogue(c *gin.Context) {
	region := c.Param("region")
	if region == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region is required"})
		return
	}
	if err := catalogueCache.Load(c.Request.Context(), region); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed", "region": region})
}

// HealthCatalogue reports whether the cache's warmup gate is open (warmup
// has completed, or a region has loaded). The solve handler does not consult
// the gate; it checks that the requested region has a snapshot.
// GET /internal/skyline/cache/health
func HealthCatalogue(c *gin.Context) {
	ready := catalogueCache != nil && catalogueCache.Ready()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checkedAt": time.Now().UTC().Format(time.RFC3339)})
}
