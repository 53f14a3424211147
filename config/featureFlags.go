package config

import (
	"os"
	"strings"
)

// PrioritisationEnabled gates the Prioritisation module. Until the module
// ships, the dashboard reports it as coming_soon.
//
// Set via env:
// - MODULE_PRIORITISATION_ENABLED=true
func PrioritisationEnabled() bool {
	return boolFromEnv("MODULE_PRIORITISATION_ENABLED")
}

// A3PlanEnabled gates the A3 Strategic Plan module (coming_soon until shipped).
//
// Set via env:
// - MODULE_A3_PLAN_ENABLED=true
func A3PlanEnabled() bool {
	return boolFromEnv("MODULE_A3_PLAN_ENABLED")
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
