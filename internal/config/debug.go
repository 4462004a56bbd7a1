package config

import "os"

func IsDebug() bool {
	return os.Getenv("SEJARAH_DEBUG") == "1"
}
