// Package modules defines what the application expects from a feature module.
package modules

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Module is one feature area mounted on the shared /api/guilds router.
type Module interface {
	Name() string
	RegisterRoutes(r chi.Router, guardWrites func(http.Handler) http.Handler)
	Close() error
}

// Registry holds the modules in registration order.
type Registry struct {
	modules []Module
}

// NewRegistry creates a registry of the given modules.
func NewRegistry(modules ...Module) *Registry {
	return &Registry{modules: modules}
}

// Mount registers every module's routes on r.
func (reg *Registry) Mount(r chi.Router, guardWrites func(http.Handler) http.Handler) {
	for _, m := range reg.modules {
		m.RegisterRoutes(r, guardWrites)
	}
}

// Close closes modules in reverse registration order and joins the errors.
func (reg *Registry) Close() error {
	var errs []error
	for i := len(reg.modules) - 1; i >= 0; i-- {
		if err := reg.modules[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", reg.modules[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
