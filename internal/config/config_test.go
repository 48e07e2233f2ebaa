package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerledger-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("PL_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("PL_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	config = Config{}
	cfg := Instance()
	a.Equal("https://poker.example.com", cfg.BaseURL)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(2, cfg.Game.MinPlayers)
	a.Equal(10, cfg.Game.MaxPlayers, "unset keys keep their defaults")

	// ensure it's only loaded once, and that we aren't handing out a pointer
	clear3 := util.SetEnv("PL_JWT_PRIVATE_KEY", "private3.key")
	defer clear3()
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("PL_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("http://localhost:5000", cfg.BaseURL)
	a.Equal("postgres", cfg.Storage)
	a.Equal(3, cfg.Game.MinPlayers)
	a.Equal(1, cfg.Game.DefaultSmallBlind)
	a.Equal(2, cfg.Game.DefaultBigBlind)
}
