package help

import (
	"github.com/Borislavv/go-reserved-slots/config"
	"time"
)

func Cfg() *config.Config {
	c := &config.Config{
		ChangePingPacket: "default",
		Locale:           "en",
		ReservedSlots: config.NewSection(
			config.Entry{Key: "guild-leader", Value: "3"},
			config.Entry{Key: "vip", Value: "7"},
			config.Entry{Key: "vip2", Value: "1"},
		),
		CustomMessages: config.NewSection(
			config.Entry{Key: "5", Value: "Five"},
			config.Entry{Key: "3", Value: "Three"},
			config.Entry{Key: "8", Value: "Eight"},
		),
	}
	c.AdjustConfig()
	return c
}

func TelemetryCfg() *config.Config {
	c := Cfg()
	c.Telemetry = &config.TelemetryCfg{Interval: 50 * time.Millisecond}
	return c
}

// MessagesOnlyCfg has no reservations: everyone passes until the server is full.
func MessagesOnlyCfg() *config.Config {
	c := Cfg()
	c.ReservedSlots = config.NewSection()
	return c
}
