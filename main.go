package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/protorns/tg-miniapp-server/bootstrap"
	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/logger"
)

// runWebServer boots the application and blocks on the signal loop.
func runWebServer() {
	app, err := bootstrap.Initialize()
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}

	runtime := bootstrap.NewRuntime(app)

	runtime.StartTelegramBot()

	if err := runtime.StartWebServer(); err != nil {
		log.Fatalf("Error starting web server: %v", err)
	}

	runtime.StartJobs()

	sigCh := make(chan os.Signal, 1)
	setupSignalHandler(sigCh)

	for {
		sig := <-sigCh

		if handleCustomSignal(sig, runtime) {
			continue
		}

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting web server...")
			if err := runtime.Restart(); err != nil {
				log.Fatalf("Error restarting: %v", err)
			}

		default:
			runtime.StopAll()
			log.Println("Shutting down servers.")
			return
		}
	}
}

func main() {
	if len(os.Args) < 2 {
		runWebServer()
		return
	}

	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "show version")

	runCmd := flag.NewFlagSet("run", flag.ExitOnError)

	settingCmd := flag.NewFlagSet("setting", flag.ExitOnError)
	var reset bool
	var show bool
	var registration string
	var welcome string
	var statsCron string
	settingCmd.BoolVar(&reset, "reset", false, "Reset all settings to defaults")
	settingCmd.BoolVar(&show, "show", false, "Display current settings")
	settingCmd.StringVar(&registration, "registration", "", "Open or close registration (true/false)")
	settingCmd.StringVar(&welcome, "welcome", "", "Set the welcome message sent to new users")
	settingCmd.StringVar(&statsCron, "statsCron", "", "Set cron spec for the stats notification")

	oldUsage := flag.Usage
	flag.Usage = func() {
		oldUsage()
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("    run            run the API server")
		fmt.Println("    setting        set settings")
	}

	flag.Parse()
	if showVersion {
		fmt.Println(config.GetVersion())
		return
	}

	switch os.Args[1] {
	case "run":
		err := runCmd.Parse(os.Args[2:])
		if err != nil {
			fmt.Println(err)
			return
		}
		runWebServer()
	case "setting":
		err := settingCmd.Parse(os.Args[2:])
		if err != nil {
			fmt.Println(err)
			return
		}
		if reset {
			resetSetting()
		} else {
			updateSetting(registration, welcome, statsCron)
		}
		if show {
			showSetting()
		}
	default:
		fmt.Println("Invalid subcommand")
		fmt.Println()
		runCmd.Usage()
		fmt.Println()
		settingCmd.Usage()
	}
}
