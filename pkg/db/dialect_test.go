package db

import "testing"

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
		wantErr  bool
	}{
		{"", DriverSQLite, false},
		{"sqlite3", DriverSQLite, false},
		{"pgx", DriverPostgres, false},
		{"postgres", DriverPostgres, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := DialectFor(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DialectFor(%q) expected error", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q) error = %v", tt.driver, err)
			}
			if d.Name() != tt.expected {
				t.Errorf("DialectFor(%q).Name() = %q, expected %q", tt.driver, d.Name(), tt.expected)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	query := "UPDATE transacoes SET descricao = ?, valor = ?, data = ? WHERE id = ?"

	pg := postgresDialect{}
	expected := "UPDATE transacoes SET descricao = $1, valor = $2, data = $3 WHERE id = $4"
	if got := pg.Rebind(query); got != expected {
		t.Errorf("postgres Rebind() = %q, expected %q", got, expected)
	}

	if got := (sqliteDialect{}).Rebind(query); got != query {
		t.Errorf("sqlite Rebind() = %q, expected unchanged", got)
	}
}
