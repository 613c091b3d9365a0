package inputhook

// DisplaySize returns the size of the main display in pixels. A size set
// through Config or INPUTHOOK_SCREEN takes precedence over detection.
func DisplaySize() (uint64, uint64, error) {
	cfg := currentConfig()
	if cfg.ScreenWidth > 0 && cfg.ScreenHeight > 0 {
		return cfg.ScreenWidth, cfg.ScreenHeight, nil
	}

	w, h, err := platform().displaySize()
	if err != nil {
		displayLogger().Debug().Err(err).Msg("display size unavailable")
		return 0, 0, newDisplayError(err)
	}
	return w, h, nil
}
