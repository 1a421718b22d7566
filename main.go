package main

import (
	"forgetting-map/fmap"
	"forgetting-map/logging"
)

func main() {
	logger := logging.CreateDebugLogger()

	fm, err := fmap.New[string, string](*logger, &fmap.Options{
		MaxAssociations: 3,
	})

	if err != nil {
		logger.Error().Err(err).Msg("failed to create forgetting map")
		return
	}

	pairs := [][2]string{
		{"alpha", "one"},
		{"beta", "two"},
		{"gamma", "three"},
	}

	for _, pair := range pairs {
		if _, err := fm.Add(pair[0], pair[1]); err != nil {
			logger.Error().Err(err).Msg("failed to add association")
			return
		}
	}

	fm.Find("alpha")
	fm.Find("gamma")

	// beta is now the least retrieved association and gets forgotten
	fm.Add("delta", "four")

	if _, ok := fm.Find("beta"); !ok {
		logger.Info().Msg("beta was forgotten")
	}

	fm.Range(func(key string, value string) bool {
		logger.Info().Str("key", key).Str("value", value).Msg("resident association")
		return true
	})

	stats := fm.Stats()
	logger.Info().
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Uint64("evictions", stats.Evictions).
		Msg("done")
}
