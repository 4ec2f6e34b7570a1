package redis

const (
	// KeyPrefix is the prefix shared by every stashlink key
	KeyPrefix = "stashlink:"
	// KeySettingsCurrent holds the last applied settings snapshot
	KeySettingsCurrent = KeyPrefix + "settings:current"
	// KeySettingsHistory is a capped list of previously applied snapshots
	KeySettingsHistory = KeyPrefix + "settings:history"
	// KeyPrefixUsage is the prefix for per-provider usage hashes
	KeyPrefixUsage = KeyPrefix + "usage:"
)

// SettingsKey returns the Redis key for the current settings snapshot
func SettingsKey() string {
	return KeySettingsCurrent
}

// SettingsHistoryKey returns the Redis key for the settings history list
func SettingsHistoryKey() string {
	return KeySettingsHistory
}

// UsageKey returns the Redis key holding resolution counters for a provider.
// Fields are identifier formats (ex: "bare", "full_url") plus "unresolved".
func UsageKey(provider string) string {
	return KeyPrefixUsage + provider
}
