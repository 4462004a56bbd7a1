package installer

import "github.com/sandevgo/sejarahbot/internal/config"

// InstallState collects the answers of the wizard as the config structs
// that are later written to .env.
type InstallState struct {
	App      config.AppConfig
	HTTP     config.HTTPConfig
	Telegram config.TelegramConfig
}

func NewInstallState() *InstallState {
	return &InstallState{
		App: config.AppConfig{
			StorageDriver: config.StorageSQLite,
			EnableHTTP:    true,
		},
		HTTP: config.HTTPConfig{Addr: ":8080"},
	}
}
