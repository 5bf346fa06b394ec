package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Diego-Arreola/mandarin-player-go/internal/httpserver"
	"github.com/Diego-Arreola/mandarin-player-go/internal/store"
	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := vocab.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load default vocabulary")
	}

	var library *vocab.Library
	if path := os.Getenv("VOCAB_DB_FILE"); path != "" {
		var err error
		library, err = vocab.OpenLibrary(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to open topic library")
		}
		defer library.Close()
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, library)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("vocab", vocab.Stats()).Msg("starting game-session server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
