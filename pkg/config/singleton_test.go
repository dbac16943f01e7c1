package config

import "testing"

func TestSetAndGetConfig(t *testing.T) {
	old := GetConfig()
	defer SetConfig(old)

	cfg := Default()
	cfg.Import.MaterialPath = "test/material"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil {
		t.Fatal("GetConfig() = nil after SetConfig")
	}
	if got.Import.MaterialPath != "test/material" {
		t.Errorf("MaterialPath = %q, want the stored instance", got.Import.MaterialPath)
	}
}

func TestMustGetConfigPanicsUninitialized(t *testing.T) {
	old := GetConfig()
	defer SetConfig(old)
	SetConfig(nil)

	defer func() {
		if recover() == nil {
			t.Error("MustGetConfig() did not panic without configuration")
		}
	}()
	MustGetConfig()
}
