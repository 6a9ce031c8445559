// Package config provides configuration helpers for go-spider commands.
// Everything is env-backed with hardware defaults matching the stock build.
package config

import "os"

// Defaults for the stock spider build.
const (
	DefaultWebPort    = "5000"
	DefaultPCA9685Add = uint16(0x40)
	DefaultTriggerPin = "GPIO23"
	DefaultEchoPin    = "GPIO24"
)

// WebPort returns the dashboard port from SPIDER_WEB_PORT or the default.
func WebPort() string {
	if p := os.Getenv("SPIDER_WEB_PORT"); p != "" {
		return p
	}
	return DefaultWebPort
}

// I2CBus returns the I2C bus name from SPIDER_I2C_BUS. Empty selects the
// first available bus.
func I2CBus() string {
	return os.Getenv("SPIDER_I2C_BUS")
}

// TriggerPin returns the ultrasonic trigger pin name.
func TriggerPin() string {
	if p := os.Getenv("SPIDER_TRIGGER_PIN"); p != "" {
		return p
	}
	return DefaultTriggerPin
}

// EchoPin returns the ultrasonic echo pin name.
func EchoPin() string {
	if p := os.Getenv("SPIDER_ECHO_PIN"); p != "" {
		return p
	}
	return DefaultEchoPin
}

// OpenAIKey returns the reasoning service key from OPENAI_API_KEY.
// Empty disables the thinking client.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Detached reports whether hardware should be skipped even when present.
func Detached() bool {
	return os.Getenv("SPIDER_DETACHED") == "1"
}
