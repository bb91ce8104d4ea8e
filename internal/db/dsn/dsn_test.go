package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoMembership/GoMembership/internal/config"
)

func TestCreate(t *testing.T) {
	db := config.DB{
		Host:     "db",
		Port:     3306,
		User:     "member",
		Password: "secret",
		Name:     "membership",
	}

	tests := []struct {
		name   string
		engine string
		extras string
		want   string
	}{
		{
			name:   "mysql",
			engine: config.EngineMySQL,
			extras: "parseTime=True",
			want:   "member:secret@tcp(db:3306)/membership?parseTime=True",
		},
		{
			name:   "mysql without extras",
			engine: config.EngineMySQL,
			want:   "member:secret@tcp(db:3306)/membership",
		},
		{
			name:   "postgres",
			engine: config.EnginePostgres,
			extras: "sslmode=disable&TimeZone=UTC",
			want:   "host=db port=3306 user=member password=secret dbname=membership sslmode=disable TimeZone=UTC",
		},
		{
			name:   "sqlite",
			engine: config.EngineSQLite,
			want:   "membership",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{DB: db}
			cfg.DB.GormEngine = tt.engine
			cfg.DB.Extras = tt.extras

			assert.Equal(t, tt.want, Create(&cfg))
		})
	}
}
