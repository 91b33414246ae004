package server

import (
	"fmt"
	"time"
)

// ResourceType enumerates the collectible node kinds in the world.
type ResourceType string

const (
	ResourceWood  ResourceType = "wood"
	ResourceStone ResourceType = "stone"
	ResourceFood  ResourceType = "food"
	ResourceGold  ResourceType = "gold"
)

// resourceProperties holds the per-type tuning for nodes. CollisionRadius
// blocks movement; HitRadius is the larger circle swings are tested against.
type resourceProperties struct {
	CollectionAmount int
	XPReward         float64
	CollisionRadius  float64
	HitRadius        float64
}

var resourcePropertiesByType = map[ResourceType]resourceProperties{
	ResourceWood:  {CollectionAmount: 1, XPReward: 7.5, CollisionRadius: 100, HitRadius: 120},
	ResourceStone: {CollectionAmount: 1, XPReward: 7.5, CollisionRadius: 100, HitRadius: 120},
	ResourceFood:  {CollectionAmount: 1, XPReward: 7.5, CollisionRadius: 70, HitRadius: 90},
	ResourceGold:  {CollectionAmount: 10, XPReward: 15.0, CollisionRadius: 70, HitRadius: 90},
}

// resourceSpawnWeights biases the random type draw; repeated entries raise a
// type's share (4/11 wood, 3/11 stone, 3/11 food, 1/11 gold).
var resourceSpawnWeights = []ResourceType{
	ResourceWood, ResourceWood, ResourceWood, ResourceWood,
	ResourceStone, ResourceStone, ResourceStone,
	ResourceFood, ResourceFood, ResourceFood,
	ResourceGold,
}

// Resource is the wire shape of a node. Nodes are permanent: harvesting
// credits the collector without consuming the node.
type Resource struct {
	ID        string       `json:"id"`
	Type      ResourceType `json:"type"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Radius    float64      `json:"radius"`
	HitRadius float64      `json:"hitRadius"`
}

type resourceState struct {
	Resource
	lastHarvest time.Time
}

// placeResources populates the registry with count nodes via rejection
// sampling. A node that cannot find a non-overlapping spot within the
// attempt budget is skipped rather than blocking startup.
func (w *World) placeResources(count int) {
	for i := 0; i < count; i++ {
		typ := resourceSpawnWeights[w.rng.Intn(len(resourceSpawnWeights))]
		props := resourcePropertiesByType[typ]

		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			x := props.CollisionRadius + w.rng.Float64()*(w.cfg.WorldWidth-2*props.CollisionRadius)
			y := props.CollisionRadius + w.rng.Float64()*(w.cfg.WorldHeight-2*props.CollisionRadius)
			if w.resourceOverlaps(x, y, props.CollisionRadius) {
				continue
			}
			w.addResource(typ, x, y)
			placed = true
			break
		}
		if !placed {
			w.logger.Warnw("no non-overlapping position for resource, skipping",
				"type", typ, "attempts", placementAttempts)
		}
	}
	w.logger.Infow("placed resources", "count", len(w.resources))
}

// resourceOverlaps reports whether a circle at (x, y) intersects any existing
// node's collision circle.
func (w *World) resourceOverlaps(x, y, radius float64) bool {
	for _, res := range w.resources {
		if distance(x, y, res.X, res.Y) < radius+res.Radius {
			return true
		}
	}
	return false
}

func (w *World) addResource(typ ResourceType, x, y float64) *resourceState {
	props := resourcePropertiesByType[typ]
	id := fmt.Sprintf("resource-%d", w.nextResourceID)
	w.nextResourceID++

	res := &resourceState{
		Resource: Resource{
			ID:        id,
			Type:      typ,
			X:         clamp(x, props.CollisionRadius, w.cfg.WorldWidth-props.CollisionRadius),
			Y:         clamp(y, props.CollisionRadius, w.cfg.WorldHeight-props.CollisionRadius),
			Radius:    props.CollisionRadius,
			HitRadius: props.HitRadius,
		},
	}
	w.resources[id] = res
	return res
}
