package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	debug   bool
	verbose bool
	quiet   bool

	cfgViper = viper.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xrpld-sim",
	Short: "goXRPLd consensus simulator",
	Long: `xrpld-sim drives the goXRPLd consensus simulation framework: a
deterministic, single-threaded network of simulated validators that run
the same consensus and preferred-branch logic as the real node, without
any network I/O or persistence. Use it to explore how the ledger trie
picks a preferred tip under forks, partitions, and byzantine peers.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
}

// initConfig binds the root command's persistent flags to cfgViper under
// the XRPLDSIM_ environment prefix. Nothing reads values back from
// cfgViper, so environment variables do not change any flag, and the run
// command's flags are not bound at all.
func initConfig() {
	cfgViper.SetEnvPrefix("XRPLDSIM")
	cfgViper.AutomaticEnv()
	_ = cfgViper.BindPFlags(rootCmd.PersistentFlags())
}
