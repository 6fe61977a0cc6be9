package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/librarian/internal/config"
	"github.com/arcanaland/librarian/internal/log"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the librarian configuration",
	Long:  `Commands for creating and editing the librarian config file.`,
	// The config commands manage the file themselves, so loading it up front
	// would create it too early.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel("debug")
		}
		return nil
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := config.Init(configPath, force)
		if err != nil {
			return err
		}
		fmt.Println("Config file initialized at:", path)
		fmt.Println("Card database:", config.GetDefaultDatabasePath())
		return nil
	},
}

// configSetDBCmd represents the config set-db command
var configSetDBCmd = &cobra.Command{
	Use:   "set-db [path]",
	Short: "Set the default card database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDatabase(configPath, args[0]); err != nil {
			return fmt.Errorf("error setting database: %w", err)
		}
		fmt.Printf("Default database set to: %s\n", args[0])
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		path := configPath
		if path == "" {
			path = config.GetConfigFilePath()
		}
		fmt.Printf("# %s\n", path)
		return toml.NewEncoder(os.Stdout).Encode(c)
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetDBCmd)
	configCmd.AddCommand(configShowCmd)
}
