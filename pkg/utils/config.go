package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service settings, all of them env-driven with dev
// defaults.
type Config struct {
	Addr         string // HTTP listen address
	UpstreamBase string // catalog API base URL
	ImageCDNBase string // image CDN base URL
	PerPage      int    // default list page size
	Preload      bool   // warm every category at boot
}

// LoadConfig reads configuration from the environment, loading a local
// .env file first when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         getenv("STARHUB_ADDR", ":8080"),
		UpstreamBase: getenv("STARHUB_SWAPI_BASE", "https://swapi.info/api"),
		ImageCDNBase: getenv("STARHUB_IMAGE_CDN_BASE", "https://cdn.jsdelivr.net/gh/tbone849/star-wars-guide@master/build/assets/img"),
		PerPage:      getenvInt("STARHUB_PER_PAGE", 20),
		Preload:      getenv("STARHUB_PRELOAD", "true") != "false",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
