package settings

import (
	"fmt"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/models"
)

type SettingsCmd struct {
	List  SettingsListCmd  `cmd:"" default:"1" help:"List current settings."`
	Get   SettingsGetCmd   `cmd:"" help:"Print one setting."`
	Set   SettingsSetCmd   `cmd:"" help:"Change one setting in the config file."`
	Theme SettingsThemeCmd `cmd:"" help:"Show, set or toggle the color theme."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	fmt.Println("Current Settings:")
	for _, key := range config.Keys() {
		value, err := config.Get(ctx.ConfigFile, key)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		fmt.Printf("  %-20s %s\n", key+":", value)
	}
	fmt.Printf("\nConfig file: %s\n", ctx.ConfigFile)
	return nil
}

type SettingsGetCmd struct {
	Key string `arg:"" help:"Setting name, e.g. ai.enabled."`
}

func (c *SettingsGetCmd) Run(ctx *cli.Context) error {
	value, err := config.Get(ctx.ConfigFile, c.Key)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name, e.g. ai.enabled."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := config.Set(ctx.ConfigFile, c.Key, c.Value); err != nil {
		return err
	}
	cfg, err := config.Load(ctx.ConfigFile)
	if err != nil {
		return err
	}
	ctx.Config = cfg
	fmt.Println("Settings updated successfully.")
	return nil
}

type SettingsThemeCmd struct {
	Theme  string `arg:"" optional:"" help:"light or dark."`
	Toggle bool   `help:"Switch between light and dark."`
}

func (c *SettingsThemeCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	switch {
	case c.Toggle:
		if _, err := tr.ToggleTheme(); err != nil {
			return err
		}
	case c.Theme != "":
		if err := tr.SetTheme(models.Theme(c.Theme)); err != nil {
			return err
		}
	}
	fmt.Printf("Theme: %s\n", tr.Theme())
	return nil
}
