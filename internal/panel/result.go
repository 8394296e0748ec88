package panel

// Normalize returns the option and apply config for result. The transparent
// background is set first so the script option can override it.
func Normalize(result *CodeResult) (Option, ApplyConfig) {
	option := Option{"backgroundColor": "transparent"}
	cfg := DefaultApplyConfig()
	if result == nil {
		return option, cfg
	}

	for key, value := range result.Option {
		option[key] = value
	}
	if result.Version == 2 && result.Config != nil {
		cfg = *result.Config
	}

	return option, cfg
}

// Apply normalizes result and applies it to surface.
func Apply(surface Surface, result *CodeResult) error {
	option, cfg := Normalize(result)
	return surface.SetOption(option, cfg)
}
