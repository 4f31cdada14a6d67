package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ======= Inventory =======

type inventoryEnv struct {
	ExpiryWindowDays int     `env:"INVENTORY_EXPIRY_WINDOW_DAYS" envDefault:"30"`
	ReorderPoint     int     `env:"INVENTORY_REORDER_POINT" envDefault:"10"`
	Capacity         int     `env:"INVENTORY_CAPACITY" envDefault:"100"`
	CriticalRatio    float64 `env:"INVENTORY_CRITICAL_RATIO" envDefault:"0.1"`
}

type inventory struct {
	raw inventoryEnv
}

func NewInventoryConfig() (*inventory, error) {
	var raw inventoryEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.ExpiryWindowDays < 0 || raw.ReorderPoint < 0 || raw.Capacity < 0 {
		return nil, fmt.Errorf("inventory thresholds must be non-negative")
	}
	if raw.CriticalRatio < 0 || raw.CriticalRatio > 1 {
		return nil, fmt.Errorf("INVENTORY_CRITICAL_RATIO must be within [0, 1], got %v", raw.CriticalRatio)
	}
	return &inventory{raw: raw}, nil
}

func (cfg *inventory) ExpiryWindowDays() int  { return cfg.raw.ExpiryWindowDays }
func (cfg *inventory) ReorderPoint() int      { return cfg.raw.ReorderPoint }
func (cfg *inventory) Capacity() int          { return cfg.raw.Capacity }
func (cfg *inventory) CriticalRatio() float64 { return cfg.raw.CriticalRatio }

// ======= Propagation =======

type propagationEnv struct {
	Workers        int           `env:"PROPAGATION_WORKERS" envDefault:"8"`
	MaxAttempts    int           `env:"PROPAGATION_MAX_ATTEMPTS" envDefault:"3"`
	RepairInterval time.Duration `env:"PROPAGATION_REPAIR_INTERVAL" envDefault:"0s"`
}

type propagation struct {
	raw propagationEnv
}

func NewPropagationConfig() (*propagation, error) {
	var raw propagationEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &propagation{raw: raw}, nil
}

func (cfg *propagation) Workers() int                  { return cfg.raw.Workers }
func (cfg *propagation) MaxAttempts() int              { return cfg.raw.MaxAttempts }
func (cfg *propagation) RepairInterval() time.Duration { return cfg.raw.RepairInterval }
