package config

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Store struct {
	Type        string `env:"STORE_TYPE" envDefault:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`
	MaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns    int32  `env:"DB_MIN_CONNS" envDefault:"2"`
}

var _ StoreConfig = Store{}

func (s Store) GetStoreType() string {
	return s.Type
}

func (s Store) GetDatabaseURL() string {
	return s.DatabaseURL
}

func (s Store) GetMaxConns() int32 {
	return s.MaxConns
}

func (s Store) GetMinConns() int32 {
	return s.MinConns
}
