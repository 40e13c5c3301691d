package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				Driver:   config.DBDriverMySQL,
				Host:     "db.local",
				Port:     3306,
				User:     "invoice",
				Password: "secret",
				Name:     "store",
				Extras:   "parseTime=true",
			},
			want: "invoice:secret@tcp(db.local:3306)/store?parseTime=true",
		},
		{
			name: "postgres",
			db: config.DB{
				Driver:   config.DBDriverPostgres,
				Host:     "db.local",
				Port:     5432,
				User:     "invoice",
				Password: "secret",
				Name:     "store",
				Extras:   "sslmode=disable",
			},
			want: "host=db.local port=5432 user=invoice password=secret dbname=store sslmode=disable",
		},
		{
			name: "sqlite uses path",
			db: config.DB{
				Driver: config.DBDriverSQLite,
				Path:   "/var/lib/go-store-invoice/store.db",
			},
			want: "/var/lib/go-store-invoice/store.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(&config.Config{DB: tt.db}))
		})
	}
}
