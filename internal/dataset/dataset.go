package dataset

import (
	"fmt"
	"sync"

	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"github.com/pfrederiksen/ietf-groups/internal/storage"
)

// Dataset is a loaded snapshot. Queries are safe to run concurrently with
// Reload.
type Dataset struct {
	store *storage.Store

	mu   sync.RWMutex
	coll *group.Collection
}

// Open loads the snapshot at path. A missing snapshot opens as an empty
// dataset.
func Open(path string) (*Dataset, error) {
	store, err := storage.NewStore(path)
	if err != nil {
		return nil, err
	}

	d := &Dataset{store: store}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// New wraps an already loaded collection. Reload is a no-op on such a
// dataset.
func New(coll *group.Collection) *Dataset {
	if coll == nil {
		coll = group.Empty()
	}
	return &Dataset{coll: coll}
}

// Reload re-reads the snapshot file and swaps in its contents. On error the
// current contents are kept.
func (d *Dataset) Reload() error {
	if d.store == nil {
		return nil
	}

	coll, err := d.store.Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	d.mu.Lock()
	d.coll = coll
	d.mu.Unlock()

	logger.Debug("Loaded dataset", logger.Fields{"path": d.store.Path(), "groups": coll.Len()})
	return nil
}

// Collection returns the current collection
func (d *Dataset) Collection() *group.Collection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coll
}

// Groups returns every group in snapshot order
func (d *Dataset) Groups() []*group.Group {
	return d.Collection().All()
}

// FindGroup looks up a group by abbreviation, ignoring case
func (d *Dataset) FindGroup(abbreviation string) (*group.Group, bool) {
	return d.Collection().Find(abbreviation)
}

// GroupExists reports whether FindGroup would find abbreviation
func (d *Dataset) GroupExists(abbreviation string) bool {
	return d.Collection().Exists(abbreviation)
}

func (d *Dataset) GroupsByType(groupType string) []*group.Group {
	return d.Collection().ByType(groupType)
}

func (d *Dataset) GroupsByArea(area string) []*group.Group {
	return d.Collection().ByArea(area)
}

func (d *Dataset) ActiveGroups() []*group.Group {
	return d.Collection().Active()
}

func (d *Dataset) ConcludedGroups() []*group.Group {
	return d.Collection().Concluded()
}

// GroupTypes returns the distinct group types, sorted
func (d *Dataset) GroupTypes() []string {
	return d.Collection().Types()
}

// Areas returns the distinct non-empty areas, sorted
func (d *Dataset) Areas() []string {
	return d.Collection().Areas()
}

func (d *Dataset) IETFGroups() []*group.Group {
	return d.Collection().IETF()
}

func (d *Dataset) IRTFGroups() []*group.Group {
	return d.Collection().IRTF()
}

func (d *Dataset) WorkingGroups() []*group.Group {
	return d.Collection().WorkingGroups()
}

func (d *Dataset) ResearchGroups() []*group.Group {
	return d.Collection().ResearchGroups()
}
