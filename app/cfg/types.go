package cfg

type Cfg struct {
	// Server configuration
	Port    string
	BaseUrl string

	// Storage configuration
	DatabasePath string

	// Admin API configuration
	AdminToken string

	// Channel seed configuration
	SeedFile string

	// Application metadata
	Debug   bool
	Version string
}
