package confs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config holds every runtime setting the server needs. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	BcryptCost  int    `envconfig:"BCRYPT_COST" default:"10"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	AdminEmail  string `envconfig:"ADMIN_EMAIL"`
	FlushEvery  int    `envconfig:"AUDIT_FLUSH_MINUTES" default:"5"`
	TokenTTLMin int    `envconfig:"TOKEN_TTL_MINUTES" default:"1440"`
}

// LoadConfig loads environment variables from a .env file if present
// and parses them into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	// bcrypt rejects costs outside its range, fall back to the library default
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Printf("warning: BCRYPT_COST %d out of range, using default", cfg.BcryptCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &cfg, nil
}
