package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type mongoEnv struct {
	Host     string `env:"MONGO_HOST,required"`
	Port     int    `env:"MONGO_PORT,required"`
	User     string `env:"MONGO_INITDB_ROOT_USERNAME,required"`
	Password string `env:"MONGO_INITDB_ROOT_PASSWORD,required"`
	DBName   string `env:"MONGO_DATABASE,required"`
	AuthDB   string `env:"MONGO_AUTH_DB" envDefault:"admin"`

	UnitsCollection        string `env:"MONGO_UNITS_COLLECTION" envDefault:"units"`
	ProductsCollection     string `env:"MONGO_PRODUCTS_COLLECTION" envDefault:"products"`
	CategoriesCollection   string `env:"MONGO_CATEGORIES_COLLECTION" envDefault:"categories"`
	TagsCollection         string `env:"MONGO_TAGS_COLLECTION" envDefault:"tags"`
	ProductTypesCollection string `env:"MONGO_PRODUCT_TYPES_COLLECTION" envDefault:"product_types"`
	SequencesCollection    string `env:"MONGO_SEQUENCES_COLLECTION" envDefault:"sequences"`
}

type mongo struct {
	raw mongoEnv
}

func NewMongoConfig() (*mongo, error) {
	var raw mongoEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &mongo{raw: raw}, nil
}

func (cfg *mongo) DatabaseName() string           { return cfg.raw.DBName }
func (cfg *mongo) UnitsCollection() string        { return cfg.raw.UnitsCollection }
func (cfg *mongo) ProductsCollection() string     { return cfg.raw.ProductsCollection }
func (cfg *mongo) CategoriesCollection() string   { return cfg.raw.CategoriesCollection }
func (cfg *mongo) TagsCollection() string         { return cfg.raw.TagsCollection }
func (cfg *mongo) ProductTypesCollection() string { return cfg.raw.ProductTypesCollection }
func (cfg *mongo) SequencesCollection() string    { return cfg.raw.SequencesCollection }

func (cfg *mongo) DSN() string {
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%d/%s?authSource=%s",
		cfg.raw.User,
		cfg.raw.Password,
		cfg.raw.Host,
		cfg.raw.Port,
		cfg.raw.DBName,
		cfg.raw.AuthDB,
	)
}
