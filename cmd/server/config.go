package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Elekrisk/moba-try-5/internal/gameserver"
)

var portRangePattern = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)

// Config holds everything the server needs to start, gathered from
// positional args, flags, and LOBBY_-prefixed environment variables
// (SPEC_FULL.md §1 Configuration).
type Config struct {
	bindAddr        string
	tlsCert         string
	tlsKey          string
	enablePprof     bool
	pprofPort       int
	enableDashboard bool

	launchModeArg  string
	gameServerPath string
	portRangeArg   string

	launchMode       gameserver.LaunchMode
	portMin, portMax int
}

func (c *Config) validate() error {
	switch c.launchModeArg {
	case "executable":
		c.launchMode = gameserver.LaunchModeExecutable
	case "gorun":
		c.launchMode = gameserver.LaunchModeGoRun
	default:
		return fmt.Errorf("launch_mode must be %q or %q, got %q", "executable", "gorun", c.launchModeArg)
	}

	if strings.TrimSpace(c.gameServerPath) == "" {
		return fmt.Errorf("game_server_path must not be empty")
	}

	m := portRangePattern.FindStringSubmatch(c.portRangeArg)
	if m == nil {
		return fmt.Errorf("port_range must look like %q or %q, got %q", "1000", "1000-2000", c.portRangeArg)
	}
	min, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("invalid port_range: %w", err)
	}
	max := min
	if m[2] != "" {
		max, err = strconv.Atoi(m[2])
		if err != nil {
			return fmt.Errorf("invalid port_range: %w", err)
		}
	}
	if min < 1 || max > 65535 || min > max {
		return fmt.Errorf("port_range %q is out of bounds", c.portRangeArg)
	}
	c.portMin, c.portMax = min, max

	if (c.tlsCert == "") != (c.tlsKey == "") {
		return fmt.Errorf("both --tls-cert and --tls-key must be provided together")
	}

	if c.enablePprof && (c.pprofPort < 1 || c.pprofPort > 65535) {
		return fmt.Errorf("invalid pprof port: %d", c.pprofPort)
	}

	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LOBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lobby-server launch_mode game_server_path port_range",
		Short:         "Matchmaking lobby service: team formation, champion select, and game-server handoff.",
		Args:          cobra.ExactArgs(3),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.launchModeArg = args[0]
			cfg.gameServerPath = args[1]
			cfg.portRangeArg = args[2]
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.bindAddr, "listen-addr", ":54765", "address to bind the websocket listener to (env: LOBBY_LISTEN_ADDR)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate; omit for an ephemeral self-signed one (env: LOBBY_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: LOBBY_TLS_KEY)")
	fs.BoolVar(&cfg.enablePprof, "enable-pprof", false, "register net/http/pprof handlers on a separate port (env: LOBBY_ENABLE_PPROF)")
	fs.IntVar(&cfg.pprofPort, "pprof-port", 6060, "port for the pprof server (env: LOBBY_PPROF_PORT)")
	fs.BoolVar(&cfg.enableDashboard, "enable-dashboard", false, "run the live operator dashboard in this terminal (env: LOBBY_ENABLE_DASHBOARD)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
