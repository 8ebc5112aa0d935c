package domain

const unknownDescription = "Unknown"

// SegmentSettings holds default segmentation options.
type SegmentSettings struct {
	// Method is the default segmentation method.
	Method SegmentMethod `validate:"oneof=paragraph sentence custom"`

	// Length is the default segment length in words.
	Length int `validate:"min=50,max=500"`
}

// JobSettings holds job import configuration.
type JobSettings struct {
	// WatchDir is the drop folder watched for new text files.
	// Empty disables the watcher.
	WatchDir string

	// Extensions lists the file extensions accepted for import.
	Extensions []string `validate:"min=1,dive,startswith=."`

	// Owner is recorded on jobs created by import.
	Owner string `validate:"required"`
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Host is the interface to bind.
	Host string `validate:"required,hostname|ip"`

	// Port is the TCP port to listen on.
	Port int `validate:"min=1,max=65535"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Segment holds segmentation defaults.
	Segment SegmentSettings

	// Jobs holds job import settings.
	Jobs JobSettings

	// Server holds HTTP API settings.
	Server ServerSettings

	// SchedulerEnabled is the master switch for background tasks.
	SchedulerEnabled bool
}

// DefaultImportExtensions returns the file extensions accepted as job input.
func DefaultImportExtensions() []string {
	return []string{".txt", ".md"}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Segment: SegmentSettings{
			Method: SegmentByParagraph,
			Length: DefaultSegmentLength,
		},
		Jobs: JobSettings{
			Extensions: DefaultImportExtensions(),
			Owner:      "narrator",
		},
		Server: ServerSettings{
			Host: "127.0.0.1",
			Port: 8642,
		},
		SchedulerEnabled: true,
	}
}
