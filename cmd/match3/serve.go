package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the match3 SSH server",
	Long: `Start an SSH server that allows users to connect and play levels.

Each SSH connection gets its own session with the level menu.
Results are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config

Examples:
  match3 serve                           # Listen on the configured address
  match3 serve --ssh :2222               # Listen on port 2222
  match3 serve --host-key ./my_host_key  # Use specific host key
  match3 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	addr := flagSSHAddr
	if addr == "" {
		addr = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = cfg.Server.HostKeyPath
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: hostKey,
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Levels:      levelProvider(cfg),
		Engine:      cfg.Engine,
		Difficulty:  cfg.Difficulty,
		Logger:      newLogger(os.Stderr, cfg),
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting match3 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
