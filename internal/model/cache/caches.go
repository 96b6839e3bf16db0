package cache

import (
	"sync"

	"github.com/go-redis/redis/v8"

	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// CommittedPlan holds the latest plan computed from real backlog only.
	// What-if results are never cached.
	CommittedPlan *cache.Set[model.PlanResult]

	ActiveOrders *cache.Singular[[]*model.Order]
	Resources    *cache.Singular[[]*model.Resource]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Populate(client)
		initializeCaches()
	})
}

func Delete(name string) error {
	if f, ok := SingularFlusherMap[name]; ok {
		return f()
	}
	if f, ok := SetMap[name]; ok {
		return f()
	}
	return nil
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	CommittedPlan = cache.NewSet[model.PlanResult]("plan")
	SetMap["plan"] = CommittedPlan.Flush

	ActiveOrders = cache.NewSingular[[]*model.Order]("activeOrders")
	SingularFlusherMap["activeOrders"] = ActiveOrders.Delete

	Resources = cache.NewSingular[[]*model.Resource]("resources")
	SingularFlusherMap["resources"] = Resources.Delete
}
