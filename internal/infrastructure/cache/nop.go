package cache

import (
	"context"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/ports"
)

var _ ports.LookupCache = Nop{}

// Nop caché vacía usada cuando no hay REDIS_URL: toda lectura es un miss.
type Nop struct{}

// GetJSON siempre devuelve found=false.
func (Nop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

// SetJSON descarta el valor.
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
