package main

import (
	"github.com/rs/zerolog/log"

	"github.com/relq/relq/cmd/relq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
