package cmd

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zxfonline/ultrafast/config"
	"github.com/zxfonline/ultrafast/log"
	"github.com/zxfonline/ultrafast/random"
)

const defaultConfigName = ".ultrafast.yaml"

// app carries the state shared by the sub commands of one root command.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCmd builds the command tree. Every call gets its own viper
// instance, so flags and environment are read fresh.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:   "ultrafast",
		Short: "Ultra fast deterministic random numbers.",
		Long: `Ultra fast deterministic random numbers for 8, 16, 32 and 64 bit widths.
Print draws, dump a raw byte stream or run lua scripts, For example:
  ultrafast draw --width=8 --count=4
  ultrafast draw --width=8 --v1=239 --v2=241 --v3=251 --seed=1
  ultrafast dump --profile=sensor --bytes=1048576 > sensor.bin
  ultrafast script gen.lua`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "profile file (default is $HOME/"+defaultConfigName+")")
	pf.String("log-level", "info", "log level")
	pf.Bool("log-json", false, "log in json")
	pf.String("profile", "", "generator profile from the config file")
	pf.Int("width", 32, "output width in bits: 8, 16, 32 or 64")
	pf.Uint64("v1", 0, "shaping constant loaded into c")
	pf.Uint64("v2", 0, "shaping constant loaded into b")
	pf.Uint64("v3", 0, "shaping constant loaded into a")
	pf.Uint64("seed", 0, "seed value")
	pf.Bool("wide", false, "derive every register from --seed instead of only the tick")
	if err := a.v.BindPFlags(pf); err != nil {
		panic(err)
	}
	a.v.SetEnvPrefix("ultrafast")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(a.drawCmd(), a.dumpCmd(), a.scriptCmd())
	return rootCmd
}

// Execute runs the command line. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.WithError(err).Error("ultrafast failed")
		os.Exit(1)
	}
}

func (a *app) setup() error {
	if err := log.SetLevel(a.v.GetString("log-level")); err != nil {
		return err
	}
	log.SetJSON(a.v.GetBool("log-json"))
	fname := a.v.GetString("config")
	if fname == "" {
		home, err := homedir.Dir()
		if err != nil {
			log.Debugf("no home directory: %v", err)
			return nil
		}
		fname = filepath.Join(home, defaultConfigName)
		if _, err := os.Stat(fname); err != nil {
			return nil
		}
	}
	cfg, err := config.InitConfig(fname)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// generator builds from --profile, or from the width/constant/seed flags.
func (a *app) generator() (random.Generator, error) {
	if name := a.v.GetString("profile"); name != "" {
		if a.cfg == nil {
			return nil, config.ErrProfileNotFound
		}
		return a.cfg.Build(name)
	}
	p := &config.Profile{Name: "command line", Width: a.v.GetInt("width")}
	for key, dst := range map[string]**uint64{"v1": &p.V1, "v2": &p.V2, "v3": &p.V3, "seed": &p.Seed} {
		if a.v.IsSet(key) {
			v := a.v.GetUint64(key)
			*dst = &v
		}
	}
	if a.v.GetBool("wide") {
		p.SeedMode = config.SeedWide
	}
	return p.Build()
}
