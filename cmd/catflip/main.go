package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sethgrid/catflip/internal/bridge"
	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/config"
	"github.com/sethgrid/catflip/internal/discovery"
	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/logging"
	"github.com/sethgrid/catflip/internal/traits"
)

var (
	configPath string
)

const Version = "v0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "catflip",
		Short: "catflip - raise a cat for twenty turns, then sell it",
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Println(Version)
				return
			}
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves --config, the nearest project config, or the global
// one, in that order.
func loadConfig() (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	path, err := discovery.Resolve(configPath, cwd)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

// sessionFactory builds sessions from config. A fixed seed makes every
// session replay the same cats and buyers.
func sessionFactory(cfg config.Config, cat *catalog.Catalog, logger *zap.Logger) func() *game.Session {
	var n atomic.Int64
	return func() *game.Session {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano() + n.Add(1)
		}
		return game.New(cat,
			game.WithLogger(logger),
			game.WithRand(rand.New(rand.NewSource(seed))),
			game.WithTurnsPerRound(cfg.TurnsPerRound),
			game.WithStartingMoney(cfg.StartingMoney),
		)
	}
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		animate, _ := cmd.Flags().GetBool("animate")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// stdout belongs to the game
		logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: "stderr"})
		if err != nil {
			return err
		}
		defer logger.Sync()

		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}

		session := sessionFactory(cfg, cat, logger)()
		return runPlay(os.Stdin, os.Stdout, session, playOptions{
			now:       time.Now,
			wellbeing: cfg.Wellbeing,
			animate:   animate,
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
		if err != nil {
			return err
		}
		defer logger.Sync()

		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := bridge.NewHandler(bridge.Options{
			NewSession:   sessionFactory(cfg, cat, logger),
			Catalog:      cat,
			TickInterval: cfg.TickInterval.Std(),
			PushInterval: cfg.StatePushInterval.Std(),
			Wellbeing:    cfg.Wellbeing,
		}, logger, bridge.NewMetrics())
		srv := bridge.NewServer(cfg.ListenAddr, handler, logger)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down http server")
			return srv.Shutdown(context.Background())
		})
		return g.Wait()
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		var baseDir string
		if global {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = home
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			baseDir = cwd
		}

		path, err := config.WriteDefault(baseDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show shop items, traits and buyers",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		}
		fmt.Print(formatCatalog(cat))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	playCmd.Flags().Bool("animate", false, "Animate actions in place")
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	initCmd.Flags().Bool("global", false, "Write to the home directory instead of the current one")
	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}

func formatCatalog(cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("Consumables:\n")
	for _, c := range cat.Consumables {
		fmt.Fprintf(&b, "  %-10s $%-5d %s\n", c.ID, c.Cost, c.Description)
	}
	b.WriteString("Accessories:\n")
	for _, a := range cat.Accessories {
		fmt.Fprintf(&b, "  %-10s $%-5d %s\n", a.ID, a.Cost, a.Description)
	}
	b.WriteString("Upgrades:\n")
	for _, u := range cat.Upgrades {
		fmt.Fprintf(&b, "  %-10s $%-5d %s (max %d)\n", u.ID, u.Cost, u.Description, u.Max)
	}
	b.WriteString("Traits:\n")
	for _, t := range cat.Traits {
		fmt.Fprintf(&b, "  %-18s %s\n", t.Name, t.Description)
	}
	b.WriteString("Buyers:\n")
	for _, by := range cat.Buyers {
		fmt.Fprintf(&b, "  %-12s base $%d, +$%d per %s\n",
			by.Name, by.BasePrice, by.TraitBonus, traits.Format(by.DesiredTraits, cat.TraitName))
	}
	return b.String()
}
