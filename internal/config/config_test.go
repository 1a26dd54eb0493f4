package config

import "testing"

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"workers":            4,
		"monthly_traffic_gb": 250.0,
		"exclude":            []string{"fixtures/**"},
	})
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.MonthlyTrafficGB != 250.0 {
		t.Errorf("MonthlyTrafficGB = %v, want 250", cfg.MonthlyTrafficGB)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "fixtures/**" {
		t.Errorf("Exclude = %+v, want [fixtures/**]", cfg.Exclude)
	}
	if !cfg.ExcludeGenerated {
		t.Error("expected ExcludeGenerated to keep its default of true when omitted")
	}
}

func TestFromMapEmptyReturnsDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want default 0", cfg.Workers)
	}
	if len(cfg.DIDecorators) == 0 {
		t.Error("expected default DI decorators to survive")
	}
}
