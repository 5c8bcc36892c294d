package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Full(t *testing.T) {
	data := []byte(`
owner: alice
database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  name: prodline_team
server:
  port: 9090
  digest_cron: "0 9 * * 1-5"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != DriverMySQL {
		t.Errorf("Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Host != "10.0.0.5" || cfg.Database.Port != 3307 {
		t.Errorf("host/port = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Name != "prodline_team" {
		t.Errorf("Name = %q", cfg.Database.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Server.DigestCron != "0 9 * * 1-5" {
		t.Errorf("DigestCron = %q", cfg.Server.DigestCron)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`owner: alice`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want sqlite default", cfg.Database.Driver)
	}
	if cfg.Database.Path != "prodline.db" {
		t.Errorf("Path = %q, want prodline.db", cfg.Database.Path)
	}
	if cfg.Database.Name != "prodline_alice" {
		t.Errorf("Name = %q, want prodline_alice", cfg.Database.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestParse_MySQLRequiresOwner(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: mysql\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "owner is required") {
		t.Errorf("error = %v, want owner requirement", err)
	}
}

func TestParse_BadDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("error = %v, want driver message", err)
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("owner: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodline.yaml")
	if err := os.WriteFile(path, []byte("owner: alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Owner != "alice" {
		t.Errorf("Owner = %q", cfg.Owner)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Database.Driver != DriverSQLite || cfg.Database.Path != "prodline.db" {
		t.Errorf("Default database = %+v", cfg.Database)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default port = %d", cfg.Server.Port)
	}
}
