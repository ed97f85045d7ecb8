package data

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

// Setting is a name/value configuration row. Values here override
// environment variables so deployments can be re-tuned without restarts.
type Setting struct {
	ID        uint32 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:128;uniqueIndex"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (Setting) TableName() string {
	return "settings"
}

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from database into cache.
func LoadSettings(db *gorm.DB) error {
	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value by name.
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}
