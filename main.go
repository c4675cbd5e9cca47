// tesuji is a Go engine speaking GTP on stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tesuji/ai"
	"tesuji/config"
	"tesuji/game"
	"tesuji/gtp"
	"tesuji/pattern"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags override the config file.
var (
	flagBoardSize = flag.Int("boardsize", 0, "Board size (9, 13, or 19)")
	flagKomi      = flag.Float64("komi", -1000, "Komi value")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s %s\n", gtp.EngineName, Version)
		return
	}

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagBoardSize == 9 || *flagBoardSize == 13 || *flagBoardSize == 19 {
		cfg.BoardSize = *flagBoardSize
	}
	if *flagKomi > -360 && *flagKomi < 360 {
		cfg.Komi = *flagKomi
	}
	if *flagDebug {
		cfg.Debug = true
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	session, err := game.NewSession(cfg.BoardSize, cfg.Komi)
	if err != nil {
		logger.Fatal("session setup failed", zap.Error(err))
	}

	gen := ai.NewGenerator(pattern.Builtin())
	gen.PassThreshold = cfg.PassThreshold
	gen.LadderDepth = cfg.LadderDepth
	gen.Attach(session)

	logger.Info("engine ready",
		zap.Int("board_size", cfg.BoardSize),
		zap.Float64("komi", cfg.Komi))

	server := gtp.NewServer(session, gen, logger)
	if err := server.Run(os.Stdin, os.Stdout); err != nil {
		logger.Fatal("protocol loop failed", zap.Error(err))
	}
}

// buildLogger logs to stderr only; stdout belongs to the protocol.
func buildLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
