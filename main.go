package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/samber/do/v2"
	flag "github.com/spf13/pflag"
	"github.com/willie68/go_globetiler/configs"
	"github.com/willie68/go_globetiler/internal"
	"github.com/willie68/go_globetiler/internal/api"
	"github.com/willie68/go_globetiler/internal/config"
	"github.com/willie68/go_globetiler/internal/generator"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/shttp"
	"github.com/willie68/go_globetiler/pkg/fileutils"
)

var (
	log          *slog.Logger
	configFile   string
	showVersion  bool
	initConfig   bool
	zoom         string
	outputFile   string
	timed        bool
	skipExisting bool
	serve        bool
	port         int
)

func init() {
	flag.BoolVarP(&initConfig, "init", "i", false, "init config, writes out a default config.")
	flag.BoolVarP(&showVersion, "version", "v", false, "showing the version")
	flag.StringVarP(&configFile, "config", "c", "", "this is the path and filename to the config file, if empty the default config is used")
	flag.StringVarP(&zoom, "zoom", "z", "", "zoom levels to generate, csv if more than one needed. Overwrites the config")
	flag.StringVarP(&outputFile, "output", "o", "", "write the commands into this file instead of stdout")
	flag.BoolVarP(&timed, "time", "t", false, "prefix every render call with time")
	flag.BoolVar(&skipExisting, "skip-existing", false, "don't emit commands for tiles already rendered")
	flag.BoolVar(&serve, "serve", false, "serve the plans via http instead of printing them")
	flag.IntVarP(&port, "port", "p", 0, "overwrite the port (8580) of the config")
	flag.Usage = func() {
		fmt.Printf("Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("examples:")
		fmt.Println("render commands for zoom 4 with the default config, run them with sh")
		fmt.Printf("%s -z 4 | sh\n", os.Args[0])
		fmt.Println("render commands for the zoom levels 0 to 3 into a script")
		fmt.Printf("%s -z 0,1,2,3 -o render.sh\n", os.Args[0])
		fmt.Println("only the tiles not rendered yet")
		fmt.Printf("%s -c config.yaml --skip-existing\n", os.Args[0])
	}
}

func main() {
	flag.Parse()
	if showVersion {
		fmt.Println(config.NewVersion().String())
		os.Exit(0)
	}
	if initConfig {
		fmt.Println(configs.ConfigFile)
		os.Exit(0)
	}
	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "can't load config: %v\r\n\r\n", err)
		flag.Usage()
		os.Exit(1)
	}
	config.SetParameter(
		config.WithPort(port),
		config.WithZoom(zoom),
		config.WithTimed(timed),
		config.WithSkipExisting(skipExisting),
	)

	inj := do.New()
	internal.Init(inj)
	log = logging.New("main")
	log.Debug("config loaded", "config", config.JSON())

	var err error
	if serve {
		err = serveHTTP(inj)
	} else {
		err = generate(inj)
	}
	internal.Stop(inj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\r\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configFile == "" {
		return config.LoadDefault()
	}
	if !fileutils.FileExists(configFile) {
		return fmt.Errorf("config file %s doesn't exists", configFile)
	}
	return config.Load(configFile)
}

func generate(inj do.Injector) error {
	if err := validateOutput(config.Get().Generator); err != nil {
		return err
	}
	gen := do.MustInvoke[*generator.Generator](inj)
	zooms, err := gen.Zooms()
	if err != nil {
		return err
	}
	st, err := writeCommands(gen, zooms, outputFile)
	if err != nil {
		return err
	}
	log.Info("commands generated", "zooms", zooms, "emitted", st.Emitted, "skipped", st.Skipped)
	return nil
}

var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeCommands writes to the file, or stdout if name is empty
func writeCommands(gen *generator.Generator, zooms []int, name string) (st generator.Stats, err error) {
	if name == "" {
		return gen.Generate(os.Stdout, zooms...)
	}
	f, err := createOutput(name)
	if err != nil {
		return st, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("can't close %s: %w", name, cerr)
		}
	}()
	return gen.Generate(f, zooms...)
}

// validateOutput the tile folder must be a folder to look for rendered tiles. A missing folder has no tiles yet.
func validateOutput(cfg generator.Config) error {
	if !cfg.SkipExisting || !fileutils.FileExists(cfg.Output) {
		return nil
	}
	if !fileutils.IsDir(cfg.Output) {
		return fmt.Errorf("output %s is not a folder, can't skip existing tiles", cfg.Output)
	}
	return nil
}

func serveHTTP(inj do.Injector) error {
	router, err := api.APIRoutes(inj)
	if err != nil {
		return fmt.Errorf("could not create api routes: %w", err)
	}
	sh := shttp.New(config.Get().Port)
	sh.StartServer(router)

	log.Info("waiting for clients")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	select {
	case <-c:
	case err := <-sh.Done():
		return err
	}
	sh.ShutdownServer()
	log.Info("server finished")
	return nil
}
