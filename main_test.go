package main

import (
	"testing"

	"github.com/pthm-cable/petri/config"
)

func TestApplyWeight(t *testing.T) {
	tests := []struct {
		name    string
		kv      string
		wantErr bool
	}{
		{"valid", "aging_rate_divisor=2.5", false},
		{"missing value", "aging_rate_divisor", true},
		{"bad number", "aging_rate_divisor=lots", true},
		{"unknown trait", "wingspan=1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyWeight(cfg, tt.kv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyWeight(%q) error = %v, wantErr %v", tt.kv, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Genome.Weights.AgingRateDivisor != 2.5 {
				t.Errorf("aging_rate_divisor = %v, want 2.5", cfg.Genome.Weights.AgingRateDivisor)
			}
		})
	}
}
