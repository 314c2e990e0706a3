package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the portal's dotenv files before the yaml config is read.
// Precedence: OS env vars > .env.local > .env (godotenv.Load never overwrites
// a variable that is already set). Returns the files actually loaded so
// startup logging can show where local overrides came from.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
