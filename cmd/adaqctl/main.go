package main

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/yunginnanet/ftdi-adaq8092/pkg/adaq8092"
	"github.com/yunginnanet/ftdi-adaq8092/pkg/ft232h"
	"github.com/yunginnanet/ftdi-adaq8092/pkg/linuxhw"
	"os"
	"periph.io/x/conn/v3/physic"
	"strconv"
	"strings"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

// loadConfig layers flags over ADAQ8092_ environment variables over an
// optional JSON file over the defaults below. Flags map "-" to ".", so
// --spi-hz sets spi.hz.
func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"transport": "ft232h",
		"log": map[string]interface{}{
			"level": "info",
		},
		"ft232h": map[string]interface{}{
			"index":  0,
			"serial": "",
			"cs":     0x10,
			"pd1":    0x01,
			"pd2":    0x02,
			"en1p8":  0x04,
			"parser": 0x08,
			"clken":  0,
		},
		"spi": map[string]interface{}{
			"device": "/dev/spidev0.0",
			"hz":     1000000,
		},
		"gpio": map[string]interface{}{
			"chip":   "gpiochip0",
			"pd1":    17,
			"pd2":    27,
			"en1p8":  22,
			"parser": 23,
			"clken":  -1,
		},
		"profile": "",
		"set":     "",
		"peek":    "",
		"poke":    "",
		"save":    "",
	}
	def := dict.New(dict.WithMap(defaultConfig))
	flags := []pflag.Flag{
		{Short: 'c', Name: "config-file"},
		{Short: 't', Name: "transport"},
		{Short: 'p', Name: "profile"},
		{Short: 's', Name: "set"},
	}
	cfg := config.New(
		pflag.New(pflag.WithFlags(flags)),
		env.New(env.WithEnvPrefix("ADAQ8092_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "adaqctl.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}

type hardware struct {
	bus   adaq8092.SerialInterface
	lines adaq8092.PowerLines
	clk   adaq8092.Clock
}

func openFT232H(cfg *config.Config) (hw hardware, err error) {
	desc := ft232h.ByIndex(cfg.MustGet("ft232h.index").Int())
	if serial := cfg.MustGet("ft232h.serial").String(); serial != "" {
		desc = ft232h.BySerial(serial)
	}

	ft, err := ft232h.Connect(desc)
	if err != nil {
		return hw, err
	}
	defer func() {
		if err != nil {
			_ = ft.Close()
		}
	}()

	log.Info().Any("info", ft.Info()).
		Msgf("connected to FT232H: %s", ft)

	hz := cfg.MustGet("spi.hz").Int()
	cs := cfg.MustGet("ft232h.cs").Int()
	log.Debug().Int("hz", hz).Int("cs", cs).Msg("initializing SPI")
	if err = ft.ConfigureSPI(uint32(hz), 0, uint(cs)); err != nil {
		return hw, err
	}

	line := func(key string) (adaq8092.Line, error) {
		l, err := ft.Line(uint(cfg.MustGet("ft232h." + key).Int()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return l, nil
	}
	if hw.lines.PD1, err = line("pd1"); err != nil {
		return hw, err
	}
	if hw.lines.PD2, err = line("pd2"); err != nil {
		return hw, err
	}
	if hw.lines.En1P8, err = line("en1p8"); err != nil {
		return hw, err
	}
	if hw.lines.ParSer, err = line("parser"); err != nil {
		return hw, err
	}

	hw.clk = adaq8092.FreeRunningClock{}
	if cfg.MustGet("ft232h.clken").Int() != 0 {
		l, err := line("clken")
		if err != nil {
			return hw, err
		}
		hw.clk = adaq8092.LineClock{Line: l}
	}

	hw.bus = ft
	return hw, nil
}

func openLinux(cfg *config.Config) (hw hardware, err error) {
	dev := cfg.MustGet("spi.device").String()
	bus, err := linuxhw.OpenSPI(dev, physic.Frequency(cfg.MustGet("spi.hz").Int())*physic.Hertz)
	if err != nil {
		return hw, err
	}
	defer func() {
		if err != nil {
			_ = bus.Close()
		}
	}()
	log.Info().Str("device", bus.String()).Msg("opened spidev")

	chip := cfg.MustGet("gpio.chip").String()
	hw.lines, err = linuxhw.RequestPowerLines(chip, linuxhw.Offsets{
		PD1:    cfg.MustGet("gpio.pd1").Int(),
		PD2:    cfg.MustGet("gpio.pd2").Int(),
		En1P8:  cfg.MustGet("gpio.en1p8").Int(),
		ParSer: cfg.MustGet("gpio.parser").Int(),
	})
	if err != nil {
		return hw, err
	}

	hw.clk = adaq8092.FreeRunningClock{}
	if offset := cfg.MustGet("gpio.clken").Int(); offset >= 0 {
		l, err := linuxhw.RequestLine(chip, offset)
		if err != nil {
			for _, pl := range []adaq8092.Line{hw.lines.PD1, hw.lines.PD2, hw.lines.En1P8, hw.lines.ParSer} {
				_ = pl.Close()
			}
			return hw, err
		}
		hw.clk = adaq8092.LineClock{Line: l}
	}

	hw.bus = bus
	return hw, nil
}

func loadDeviceConfig(path string) (adaq8092.Config, error) {
	if path == "" {
		return adaq8092.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return adaq8092.Config{}, err
	}
	defer f.Close()
	return adaq8092.LoadProfile(f)
}

func saveDeviceConfig(path string, cfg adaq8092.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = adaq8092.SaveProfile(f, cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parseRegister(s string) (adaq8092.Register, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad register %q: %w", s, err)
	}
	return adaq8092.Register(v), nil
}

// pairs splits "a=b,c=d" into ordered key/value pairs.
func pairs(s string) ([][2]string, error) {
	var out [][2]string
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", kv)
		}
		out = append(out, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	return out, nil
}

// dumpAttributes logs every attribute with its current and accepted values.
func dumpAttributes(c adaq8092.Converter) error {
	for _, name := range c.Attributes() {
		val, err := c.ReadAttribute(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		avail, err := c.AvailableValues(name)
		if err != nil {
			return fmt.Errorf("failed to list values of %s: %w", name, err)
		}
		log.Info().Str("value", val).Strs("available", avail).Msg(name)
	}
	return nil
}

func run(cfg *config.Config, adc *adaq8092.ADAQ8092) error {
	sets, err := pairs(cfg.MustGet("set").String())
	if err != nil {
		return err
	}
	for _, kv := range sets {
		if err = adc.WriteAttribute(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
		log.Info().Str("attr", kv[0]).Str("value", kv[1]).Msg("attribute written")
	}

	pokes, err := pairs(cfg.MustGet("poke").String())
	if err != nil {
		return err
	}
	for _, kv := range pokes {
		reg, err := parseRegister(kv[0])
		if err != nil {
			return err
		}
		val, err := strconv.ParseUint(kv[1], 0, 8)
		if err != nil {
			return fmt.Errorf("bad value %q: %w", kv[1], err)
		}
		if err = adc.DebugRegisterWrite(reg, byte(val)); err != nil {
			return fmt.Errorf("failed to write %s: %w", reg, err)
		}
		log.Warn().Stringer("register", reg).Uint8("value", uint8(val)).Msg("raw register write")
	}

	if peek := cfg.MustGet("peek").String(); peek != "" {
		for _, p := range strings.Split(peek, ",") {
			reg, err := parseRegister(p)
			if err != nil {
				return err
			}
			val, err := adc.DebugRegisterRead(reg)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", reg, err)
			}
			log.Info().Stringer("register", reg).Str("value", fmt.Sprintf("0x%02X", val)).Msg("register read")
		}
	}

	if err = dumpAttributes(adc); err != nil {
		return err
	}

	regs, err := adc.ReadAllRegisters()
	if err != nil {
		return err
	}
	log.Info().Any("values", regs).Msg("ADAQ8092 Registers")

	if path := cfg.MustGet("save").String(); path != "" {
		if err = saveDeviceConfig(path, adc.Config()); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		log.Info().Str("path", path).Msg("profile saved")
	}
	return nil
}

func main() {
	cfg := loadConfig()

	if lvl, err := zerolog.ParseLevel(cfg.MustGet("log.level").String()); err == nil {
		log = log.Level(lvl)
	}

	devCfg, err := loadDeviceConfig(cfg.MustGet("profile").String())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load profile")
	}

	var hw hardware
	switch t := cfg.MustGet("transport").String(); t {
	case "ft232h":
		hw, err = openFT232H(cfg)
	case "linux":
		hw, err = openLinux(cfg)
	default:
		err = fmt.Errorf("unknown transport %q, want ft232h or linux", t)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open hardware")
	}

	log.Debug().Any("config", devCfg).Msg("initializing ADAQ8092")
	adc, err := adaq8092.New(hw.bus, hw.lines, hw.clk, devCfg, adaq8092.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADAQ8092")
	}

	runErr := run(cfg, adc)

	if err = adc.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close ADAQ8092")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("adaqctl failed")
	}

	log.Info().Msg("closed ADAQ8092")
}
