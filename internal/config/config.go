package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Camera and enrollment
	CameraDevice        int
	EnrollmentImagePath string
	EnrollmentWidth     int // enrollment images are decoded to this raster
	EnrollmentHeight    int

	// Inference models
	DetectorModelPath  string
	DetectorConfigPath string
	EmbedderModelPath  string

	// Decision policy
	MatchThreshold float64
	MaxAttempts    int
	CycleDelay     time.Duration

	// Reported location (placeholder coordinates, no GPS on this device)
	Latitude  float64
	Longitude float64

	// Telemetry (ThingSpeak)
	TelemetryEnabled bool
	TelemetryURL     string
	TelemetryAPIKey  string

	// Intruder alert (SMTP)
	AlertEnabled   bool
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	AlertRecipient string
	DashboardLink  string

	// Persistent storage (enrollment image + event history)
	StorageEnabled bool
	DatabasePath   string

	// Local status panel
	DisplayEnabled bool

	// Live dashboard server
	DashboardEnabled bool
	DashboardPort    int

	LogDirectory string
}

func Load() *Config {
	return &Config{
		CameraDevice:        getEnvAsInt("CAMERA_DEVICE", 0),
		EnrollmentImagePath: getEnv("ENROLLMENT_IMAGE_PATH", "/faces/user1.jpg"),
		EnrollmentWidth:     getEnvAsInt("ENROLLMENT_WIDTH", 320),
		EnrollmentHeight:    getEnvAsInt("ENROLLMENT_HEIGHT", 240),

		DetectorModelPath:  getEnv("DETECTOR_MODEL_PATH", filepath.Join(".", "models", "res10_300x300_ssd_iter_140000.caffemodel")),
		DetectorConfigPath: getEnv("DETECTOR_CONFIG_PATH", filepath.Join(".", "models", "deploy.prototxt")),
		EmbedderModelPath:  getEnv("EMBEDDER_MODEL_PATH", filepath.Join(".", "models", "nn4.small2.v1.t7")),

		MatchThreshold: getEnvAsFloat("MATCH_THRESHOLD", 0.6),
		MaxAttempts:    getEnvAsInt("MAX_ATTEMPTS", 3),
		CycleDelay:     time.Duration(getEnvAsInt("CYCLE_DELAY_MS", 2000)) * time.Millisecond,

		Latitude:  getEnvAsFloat("LOCATION_LAT", -26.2041),
		Longitude: getEnvAsFloat("LOCATION_LNG", 28.0473),

		TelemetryEnabled: getEnvAsBool("TELEMETRY_ENABLED", true),
		TelemetryURL:     getEnv("TELEMETRY_URL", "http://api.thingspeak.com/update"),
		TelemetryAPIKey:  getEnv("TELEMETRY_API_KEY", ""),

		AlertEnabled:   getEnvAsBool("ALERT_ENABLED", true),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvAsInt("SMTP_PORT", 465),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		SenderPassword: getEnv("SENDER_PASSWORD", ""),
		AlertRecipient: getEnv("ALERT_RECIPIENT", ""),
		DashboardLink:  getEnv("DASHBOARD_LINK", "http://localhost:8080"),

		StorageEnabled: getEnvAsBool("STORAGE_ENABLED", true),
		DatabasePath:   getEnv("DATABASE_PATH", filepath.Join(".", "facegate.db")),

		DisplayEnabled: getEnvAsBool("DISPLAY_ENABLED", true),

		DashboardEnabled: getEnvAsBool("DASHBOARD_ENABLED", true),
		DashboardPort:    getEnvAsInt("DASHBOARD_PORT", 8080),

		LogDirectory: getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
