package workflowtest

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

	"github.com/google/uuid"
)

var ErrEmployeeMissing = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)

// Directory is a fixed role table satisfying workflow.Directory.
type Directory struct {
	mu    sync.RWMutex
	roles map[uuid.UUID]domain.Role
}

func NewDirectory(roles map[uuid.UUID]domain.Role) *Directory {
	d := &Directory{roles: make(map[uuid.UUID]domain.Role, len(roles))}
	for id, role := range roles {
		d.roles[id] = role
	}
	return d
}

func (d *Directory) Set(id uuid.UUID, role domain.Role) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[id] = role
}

func (d *Directory) Remove(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.roles, id)
}

func (d *Directory) RoleOf(_ context.Context, id uuid.UUID) (domain.Role, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	role, ok := d.roles[id]
	if !ok {
		return "", ErrEmployeeMissing
	}
	return role, nil
}

func (d *Directory) IDsByRole(_ context.Context, role domain.Role) ([]uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]uuid.UUID, 0)
	for id, r := range d.roles {
		if r == role {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
