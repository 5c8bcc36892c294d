package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/prodline/internal/config"
	"github.com/zulandar/prodline/internal/models"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		database string
		want     string
	}{
		{
			name:     "default local",
			host:     "127.0.0.1",
			port:     3306,
			database: "prodline_alice",
			want:     "root@tcp(127.0.0.1:3306)/prodline_alice?parseTime=true",
		},
		{
			name:     "custom host and port",
			host:     "10.0.0.5",
			port:     3307,
			database: "prodline_bob",
			want:     "root@tcp(10.0.0.5:3307)/prodline_bob?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN(tt.host, tt.port, tt.database)
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSN_ParseTimeFlag(t *testing.T) {
	dsn := DSN("localhost", 3306, "test")
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN missing parseTime=true: %s", dsn)
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestConnect_SQLiteAndMigrate(t *testing.T) {
	gormDB, err := Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, model := range AllModels() {
		if !gormDB.Migrator().HasTable(model) {
			t.Errorf("missing table for %T", model)
		}
	}
}

func TestAllModels_Complete(t *testing.T) {
	want := map[string]bool{"WorkItem": false, "TimelineItem": false, "ReviewEvent": false}
	for _, model := range AllModels() {
		switch model.(type) {
		case *models.WorkItem:
			want["WorkItem"] = true
		case *models.TimelineItem:
			want["TimelineItem"] = true
		case *models.ReviewEvent:
			want["ReviewEvent"] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("AllModels missing %s", name)
		}
	}
}
