package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/validation"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySegmentMethod    = "segment.method"
	keySegmentLength    = "segment.length"
	keyJobsWatchDir     = "jobs.watch_dir"
	keyJobsExtensions   = "jobs.extensions"
	keyJobsOwner        = "jobs.owner"
	keyServerHost       = "server.host"
	keyServerPort       = "server.port"
	keySchedulerEnabled = "scheduler.enabled"
)

// SettingsKeys returns the keys accepted by Set, in display order.
func SettingsKeys() []string {
	return []string{
		keySegmentMethod, keySegmentLength,
		keyJobsWatchDir, keyJobsExtensions, keyJobsOwner,
		keyServerHost, keyServerPort,
		keySchedulerEnabled,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or malformed values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Segment: domain.SegmentSettings{
			Method: s.getSegmentMethod(defaults.Segment.Method),
			Length: s.getInt(keySegmentLength, defaults.Segment.Length),
		},
		Jobs: domain.JobSettings{
			WatchDir:   s.configStore.GetString(keyJobsWatchDir), // No default - empty disables the watcher
			Extensions: s.getStringSlice(keyJobsExtensions, defaults.Jobs.Extensions),
			Owner:      s.getString(keyJobsOwner, defaults.Jobs.Owner),
		},
		Server: domain.ServerSettings{
			Host: s.getString(keyServerHost, defaults.Server.Host),
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
		SchedulerEnabled: s.getBool(keySchedulerEnabled, defaults.SchedulerEnabled),
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySegmentMethod, settings.Segment.Method.String()},
		{keySegmentLength, settings.Segment.Length},
		{keyJobsWatchDir, settings.Jobs.WatchDir},
		{keyJobsExtensions, settings.Jobs.Extensions},
		{keyJobsOwner, settings.Jobs.Owner},
		{keyServerHost, settings.Server.Host},
		{keyServerPort, settings.Server.Port},
		{keySchedulerEnabled, settings.SchedulerEnabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keySegmentMethod:
		settings.Segment.Method = domain.SegmentMethod(strings.ToLower(value))
	case keySegmentLength:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Segment.Length = n
	case keyJobsWatchDir:
		settings.Jobs.WatchDir = value
	case keyJobsExtensions:
		settings.Jobs.Extensions = parseExtensions(value)
	case keyJobsOwner:
		settings.Jobs.Owner = value
	case keyServerHost:
		settings.Server.Host = value
	case keyServerPort:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Server.Port = n
	case keySchedulerEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.SchedulerEnabled = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig reads the [scheduler] table over the defaults.
// Task keys use underscores, so promote-scheduled lives under
// scheduler.promote_scheduled. Intervals that do not parse as a positive
// duration are ignored.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	config := domain.DefaultSchedulerConfig()
	if s.configStore == nil {
		return config
	}

	config.Enabled = s.getBool(keySchedulerEnabled, config.Enabled)
	for _, id := range domain.BuiltinTasks() {
		prefix := "scheduler." + strings.ReplaceAll(string(id), "-", "_") + "."
		schedule := config.Tasks[id]
		schedule.Enabled = s.getBool(prefix+"enabled", schedule.Enabled)
		if d, err := time.ParseDuration(s.configStore.GetString(prefix + "interval")); err == nil && d > 0 {
			schedule.Every = d
		}
		config.Tasks[id] = schedule
	}
	return config
}

// validateSettings applies struct tags, then the segment length grid.
func validateSettings(settings *domain.AppSettings) error {
	if err := validation.Struct(settings); err != nil {
		return err
	}
	opts := domain.SegmentOptions{Method: settings.Segment.Method, Length: settings.Segment.Length}
	return opts.Validate()
}

// parseExtensions splits "txt, .MD" into [".txt", ".md"].
func parseExtensions(value string) []string {
	var exts []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSegmentMethod(defaultVal domain.SegmentMethod) domain.SegmentMethod {
	val := s.configStore.GetString(keySegmentMethod)
	if val == "" {
		return defaultVal
	}
	method := domain.SegmentMethod(val)
	if !method.IsValid() {
		return defaultVal
	}
	return method
}
