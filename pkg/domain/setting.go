package domain

// SettingsKey is the stable identifier of the persisted feed settings record
const SettingsKey = "refeed_settings"
