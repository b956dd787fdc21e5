// Command register-commands registers the /apex-setup slash command for a
// guild without starting the full bot. Useful after inviting the bot to a
// new server.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/setup"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/bwmarrin/discordgo"
)

func main() {
	var (
		guildID    = flag.String("guild", "", "Guild ID (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		dryRun     = flag.Bool("dry-run", false, "Show what would be registered")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	target := cfg.Discord.GuildID
	if *guildID != "" {
		target = *guildID
	}
	if target == "" {
		fmt.Println("Error: guild ID is required (flag -guild or config)")
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Would register /apex-setup for guild %s (app %s)\n", target, cfg.Discord.DiscordAppID)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	discordSession, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	session := discord.NewDiscordSession(discordSession, logger)

	if err := setup.RegisterCommand(session, cfg.Discord.DiscordAppID, target); err != nil {
		log.Fatalf("Failed to register commands: %v", err)
	}
	fmt.Printf("Registered /apex-setup for guild %s\n", target)
}
